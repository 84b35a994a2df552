package tabular

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := " Year\tOwner \tPlayer\tPos\n2023\tAlice\tSmith\trb\n\n2023\tBob\tJones\n"

	records, err := Parse(text, Tab)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Year", "Owner", "Player", "Pos"}, records[0].Header())
	assert.Equal(t, "Alice", records[0].Get("Owner"))
	assert.Equal(t, "rb", records[0].Get("Pos"))

	// Short rows are padded, not rejected.
	assert.True(t, records[1].Has("Pos"))
	assert.Equal(t, "", records[1].Get("Pos"))
	assert.Equal(t, "Jones", records[1].Get("Player"))
}

func TestParse_CRLFAndComma(t *testing.T) {
	records, err := Parse("Year,Position,Rank,Player,Team\r\n2022,WR,1,Cooper Kupp,LAR\r\n", Comma)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cooper Kupp", records[0].Get("Player"))
	assert.Equal(t, "LAR", records[0].Get("Team"))
}

func TestParse_Positional(t *testing.T) {
	// Columns are assigned by header position, not by cell content.
	records, err := Parse("B\tA\n1\t2", Tab)
	require.NoError(t, err)
	assert.Equal(t, "1", records[0].Get("B"))
	assert.Equal(t, "2", records[0].Get("A"))
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("", Tab)
	assert.ErrorIs(t, err, ErrMalformedInput)

	records, err := Parse("  \n \n", Tab)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = Parse("Year\tOwner", Tab)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_RecordCount(t *testing.T) {
	header := []string{"H1", "H2", "H3"}
	for n := 0; n < 20; n++ {
		var sb strings.Builder
		sb.WriteString(strings.Join(header, "\t"))
		for i := 0; i < n; i++ {
			sb.WriteString(fmt.Sprintf("\n%d\tx%d\ty%d", i, i, i))
		}
		records, err := Parse(sb.String(), Tab)
		require.NoError(t, err)
		require.Len(t, records, n)
		for _, r := range records {
			for _, h := range header {
				assert.True(t, r.Has(h))
			}
		}
	}
}

func TestRecord_FirstAndFold(t *testing.T) {
	records, err := Parse("OverallPick\tOwner\tOpponent Total\n\tAlice\t99,5", Tab)
	require.NoError(t, err)
	r := records[0]

	// A declared-but-empty column still wins over later aliases.
	assert.Equal(t, "", r.First("Overall", "OverallPick", "Pick"))
	assert.Equal(t, "Alice", r.First("ManagerName", "Owner"))
	assert.Equal(t, "", r.First("Nope"))

	v, ok := r.GetFold("OpponentTotal")
	assert.True(t, ok)
	assert.Equal(t, "99,5", v)
	_, ok = r.GetFold("Total")
	assert.False(t, ok)
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 7 ", 7},
		{"", 0},
		{"abc", -1},
		{"NaN", -1},
		{"Inf", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Num(tt.in, -1), tt.in)
	}
}

func TestNumOrNull(t *testing.T) {
	_, ok := NumOrNull("   ")
	assert.False(t, ok)
	_, ok = NumOrNull("n/a")
	assert.False(t, ok)
	n, ok := NumOrNull("3,0")
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)

	assert.Nil(t, IntOrNull(""))
	require.NotNil(t, IntOrNull("4"))
	assert.Equal(t, 4, *IntOrNull("4"))
}

func TestUpper(t *testing.T) {
	assert.Equal(t, "QB", Upper("qb"))
	assert.Equal(t, "DST", Upper(" dst "))
}

func TestLocaleNum(t *testing.T) {
	tests := map[string]float64{
		"174,76":   174.76,
		"1.234,56": 1234.56,
		"1,234.56": 1234.56,
		"174.76":   174.76,
		"98 pts":   98,
		"":         0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, LocaleNum(in), 1e-9, in)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Odell Beckham Jr.", "odellbeckham"},
		{"odell beckham", "odellbeckham"},
		{"D'Andre Swift", "dandreswift"},
		{"Ja’Marr Chase", "jamarrchase"},
		{"Clyde Edwards-Helaire", "clydeedwardshelaire"},
		{"Marvin Jones III", "marvinjones"},
		{"Kenneth Walker III", "kennethwalker"},
		{"Iverson Junior", "iversonjunior"},
		{"Sr Smith", "smith"},
		{"  A  J  Brown ", "ajbrown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), tt.in)
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"", "Jr.", "i i", "I. I.", "Odell Beckham Jr.", "Patrick Mahomes II",
		"A.J. Brown", "iv-v", "Sr. Jr. III", "x ii i", "Amon-Ra St. Brown",
		"Ja’Marr Chase", "José Núñez jr", " Nbsp Name",
	}
	for _, s := range inputs {
		once := NormalizeName(s)
		assert.Equal(t, once, NormalizeName(once), s)
	}
}
