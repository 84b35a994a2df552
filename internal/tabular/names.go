package tabular

import (
	"regexp"
	"strings"
)

var (
	namePunct   = regexp.MustCompile(`[.\-'\x{2019}]`)
	nameSuffix  = regexp.MustCompile(`\b(jr|sr|iii|ii|iv)\b`)
	nameSpacing = regexp.MustCompile(`[\s\p{Z}]+`)
)

// NormalizeName folds a player or manager name into a join key: lower case,
// no ". - ' ’" punctuation, no generational suffix tokens, no whitespace.
// "Odell Beckham Jr." and "odell beckham" both become "odellbeckham".
//
// Distinct people with the same folded name collide; the data carries no
// player id to tell them apart.
func NormalizeName(s string) string {
	// Dropping whitespace can glue fragments into a new suffix token
	// ("i i" -> "ii"), so fold until nothing changes.
	for {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = strings.ToLower(s)
	s = namePunct.ReplaceAllString(s, "")
	s = nameSuffix.ReplaceAllString(s, "")
	s = nameSpacing.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
