package tabular

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Num parses s as a number, accepting ',' as the decimal separator.
// Anything that does not parse to a finite value yields fallback.
func Num(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		// An empty cell counts as zero, not as unparseable.
		return 0
	}
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// NumOrNull is Num for cells whose absence means something: a blank cell
// yields ok=false instead of a default.
func NumOrNull(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Int is Num truncated to an int.
func Int(s string) int {
	return int(Num(s, 0))
}

// IntOrNull is NumOrNull truncated to an int.
func IntOrNull(s string) *int {
	n, ok := NumOrNull(s)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

// Upper normalizes position codes so "qb" and "QB" group together.
func Upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

var (
	germanThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
	usThousands     = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	plainDecimal    = regexp.MustCompile(`^\d+(\.\d+)?$`)
	nonNumeric      = regexp.MustCompile(`[^0-9.\-]`)
)

// LocaleNum reads totals exported by spreadsheets in either German or US
// formatting: "174,76", "1.234,56", "1,234.56" and "174.76" all parse.
func LocaleNum(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch {
	case strings.Contains(s, ",") && !strings.Contains(s, "."):
		return Num(strings.Join(strings.Fields(s), ""), 0)
	case germanThousands.MatchString(s):
		return Num(strings.ReplaceAll(s, ".", ""), 0)
	case usThousands.MatchString(s):
		return Num(strings.ReplaceAll(s, ",", ""), 0)
	case plainDecimal.MatchString(s):
		return Num(s, 0)
	}
	return Num(nonNumeric.ReplaceAllString(s, ""), 0)
}
