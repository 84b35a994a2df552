package static

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/tabular"
)

const draftTSV = "Round\tPickInRound\tOverallPick\tOwner\tPlayer\tPosition\n" +
	"1\t2\t2\tBob\tTravis Kelce\tte\n" +
	"1\t1\t1\tAlice\tCMC\tRB\n"

func TestDirSource(t *testing.T) {
	fsys := fstest.MapFS{
		"drafts/2023-draft.tsv": {Data: []byte(draftTSV)},
	}
	api := NewAPI(NewDirSource(fsys))

	picks, err := api.GetDraft(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, "Alice", picks[0].ManagerName)
	assert.Equal(t, 1, picks[0].OverallPick)
	assert.Equal(t, "TE", picks[1].Position)
	assert.Equal(t, 2023, picks[1].Season)

	_, err = api.GetDraft(context.Background(), 2019)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/league/waivers.tsv":
			_, _ = w.Write([]byte("Year\tOwner\tPlayer\tPos\tFirstWeek\tWeeksPlayed\tPointsAfterPickup\tAvgPoints\n" +
				"2022\tSimi\tGeno Smith\tQB\t2\t15\t250,1\t16.7\n"))
		case "/data/league/draft_scores.tsv":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	api := NewAPI(NewClient(srv.URL + "/data/"))

	waivers, err := api.GetWaivers(context.Background())
	require.NoError(t, err)
	require.Len(t, waivers, 1)
	assert.Equal(t, 250.1, waivers[0].PointsAfterPickup)
	assert.Equal(t, 15, waivers[0].WeeksPlayed)

	_, err = api.GetRankings(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = api.GetScores(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_BreakerOpens(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing.tsv" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	// Missing files never trip the breaker.
	for i := 0; i < 6; i++ {
		_, err := c.Fetch(ctx, "missing.tsv")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	for i := 0; i < 5; i++ {
		_, err := c.Fetch(ctx, "broken.tsv")
		require.Error(t, err)
	}
	assert.Equal(t, 11, hits)

	_, err := c.Fetch(ctx, "broken.tsv")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 11, hits)
}

func TestParseDraft_ColumnAliases(t *testing.T) {
	picks, err := ParseDraft(2020, "Round\tPickInRound\tOverall\tManagerName\tPlayer\tPos\tNFLTeam\n"+
		"2\t1\t13\tCarol\tDavante Adams\twr\tLV\n")
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, 13, picks[0].OverallPick)
	assert.Equal(t, "Carol", picks[0].ManagerName)
	assert.Equal(t, "WR", picks[0].Position)
	assert.Equal(t, "LV", picks[0].NFLTeam)
	assert.Equal(t, "2.01", picks[0].Label())

	_, err = ParseDraft(2020, "")
	assert.ErrorIs(t, err, tabular.ErrMalformedInput)
}

func TestParseScores(t *testing.T) {
	scores, err := ParseScores("Year\tOwner\tPlayer\tPos\tPick\tFinal_Pos_Rank\tScore\tPoints\n" +
		"2023\tAlice\tCMC\trb\t1\t1\t9,5\t391.3\n" +
		"2023\tBob\tNobody\tWR\t2\t\tabc\t\n")
	require.NoError(t, err)
	require.Len(t, scores, 2)

	require.NotNil(t, scores[0].FinalPositionRank)
	assert.Equal(t, 1, *scores[0].FinalPositionRank)
	assert.Equal(t, 9.5, scores[0].SeasonScore)
	assert.Equal(t, "RB", scores[0].Position)
	require.NotNil(t, scores[0].Points)
	assert.Equal(t, 391.3, *scores[0].Points)
	assert.Nil(t, scores[0].DraftPosRank)

	assert.Nil(t, scores[1].FinalPositionRank)
	assert.Equal(t, 0.0, scores[1].SeasonScore)
	assert.Nil(t, scores[1].Points)
}

func TestParseRankings(t *testing.T) {
	rows, err := ParseRankings("Year,Position,Rank,Player\n2023,wr,3,Tyreek Hill\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2023, rows[0].Season)
	assert.Equal(t, "WR", rows[0].Position)
	assert.Equal(t, 3, rows[0].Rank)
}

func TestParseWeeklyStandings(t *testing.T) {
	snaps, err := ParseWeeklyStandings([]byte(`[
		{"week": 2, "rows": [{"team": "A", "wins": 2, "losses": 0, "pf": 210.5, "pa": 180, "pct": 1, "rank": 1}]},
		{"week": 1, "rows": [{"team": "A", "wins": 1, "losses": 0, "ties": 0, "pf": 100, "pa": 90, "pct": 1, "rank": 1}]}
	]`))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 1, snaps[0].Week)
	assert.Equal(t, 210.5, snaps[1].Rows[0].PointsFor)

	_, err = ParseWeeklyStandings([]byte("{"))
	assert.Error(t, err)
}

func TestParseGames(t *testing.T) {
	csvText := "Owner, Total ,Opponent,OpponentTotal\n" +
		"Alice,\"174,76\",Bob,\"120,00\"\n" +
		"Bob,\"120,00\",Alice,\"174,76\"\n" +
		"Carol,\"1.234,56\",Dave,\"99.5\"\n" +
		",10,Nobody,5\n"

	games, err := ParseGames(2019, 3, []byte(csvText))
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "Alice", games[0].TeamA)
	assert.Equal(t, 174.76, games[0].PointsA)
	assert.Equal(t, "Bob", games[0].TeamB)
	assert.Equal(t, 120.0, games[0].PointsB)
	assert.Equal(t, 2019, games[0].Season)
	assert.Equal(t, 3, games[0].Week)

	// Lone row: opponent columns fill in team B.
	assert.Equal(t, "Dave", games[1].TeamB)
	assert.Equal(t, 1234.56, games[1].PointsA)
	assert.Equal(t, 99.5, games[1].PointsB)

	_, err = ParseGames(2019, 3, []byte("Owner,Total\nAlice,100\n"))
	assert.ErrorIs(t, err, tabular.ErrMalformedInput)

	games, err = ParseGames(2019, 3, nil)
	assert.NoError(t, err)
	assert.Empty(t, games)
}

func TestGetGames_PlayoffFlag(t *testing.T) {
	fsys := fstest.MapFS{
		"teamgamecenter/2021/14.csv": {Data: []byte("Owner,Total,Opponent,Opponent Total\nA,100,B,90\n")},
		"teamgamecenter/2021/15.csv": {Data: []byte("Owner,Total,Opponent,Opponent Total\nA,100,B,90\n")},
	}
	api := NewAPI(NewDirSource(fsys))

	regular, err := api.GetGames(context.Background(), 2021, 14, 15)
	require.NoError(t, err)
	require.Len(t, regular, 1)
	assert.False(t, regular[0].Playoff)

	playoff, err := api.GetGames(context.Background(), 2021, 15, 15)
	require.NoError(t, err)
	require.Len(t, playoff, 1)
	assert.True(t, playoff[0].Playoff)
}

func TestParseTeams(t *testing.T) {
	teams, err := ParseTeams(2019, []byte(`[
		{"team":"Benni","wins":10,"losses":4,"ties":0,"pf":1820.5,"pa":1600},
		{"owner":"Simi","wins":"3","losses":"11","pf":"1.402,75","pa":null},
		{"manager":"Kessi","pf":"1,500.25"}
	]`))
	require.NoError(t, err)
	require.Len(t, teams, 3)

	assert.Equal(t, 2019, teams[0].Season)
	assert.Equal(t, 14, teams[0].Games())
	assert.Equal(t, "Simi", teams[1].Team)
	assert.Equal(t, 3, teams[1].Wins)
	assert.Equal(t, 1402.75, teams[1].PointsFor)
	assert.Equal(t, 0.0, teams[1].PointsAgainst)
	assert.Equal(t, "Kessi", teams[2].Team)
	assert.Equal(t, 1500.25, teams[2].PointsFor)
	assert.Equal(t, 1, teams[2].Games())

	_, err = ParseTeams(2019, []byte(`{"team":"not a list"}`))
	assert.Error(t, err)
}

func TestParseMedals(t *testing.T) {
	years, err := ParseMedals("Year\tQB\tOwnerQB\tRB\tOwnerRB\tWR\tOwnerWR\tTE\tOwnerTE\n" +
		"2022\tPatrick Mahomes\tSimi\tAustin Ekeler\tRitz\tJustin Jefferson\tMarv\tTravis Kelce\tSimi\n" +
		"2023\tJosh Allen\tBenni\tChristian McCaffrey\tErik\tTyreek Hill\tJuschka\t\t\n" +
		"\tstray\tline\n")
	require.NoError(t, err)
	require.Len(t, years, 2)

	assert.Equal(t, 2023, years[0].Season)
	require.Len(t, years[0].Medals, 3)
	assert.Equal(t, models.Medal{Position: "WR", Player: "Tyreek Hill", Owner: "Juschka"}, years[0].Medals[2])
	assert.Len(t, years[1].Medals, 4)

	_, err = ParseMedals("")
	assert.ErrorIs(t, err, tabular.ErrMalformedInput)
}
