// Package waivers filters and sorts the league's waiver pickup history.
package waivers

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

const allTimeLimit = 20

// Sortable columns.
const (
	ColYear              = "Year"
	ColOwner             = "Owner"
	ColPlayer            = "Player"
	ColPos               = "Pos"
	ColFirstWeek         = "FirstWeek"
	ColWeeksPlayed       = "WeeksPlayed"
	ColPointsAfterPickup = "PointsAfterPickup"
	ColAvgPoints         = "AvgPoints"
)

// Filter narrows the pickup list. Zero values filter nothing.
type Filter struct {
	Season      int
	ExcludeKDST bool
	ExcludeQB   bool
	MinWeeks    int
	Query       string
}

// Sort names a column and direction.
type Sort struct {
	Column string
	Asc    bool
}

// DefaultSort is the board's initial order: most points after pickup first.
var DefaultSort = Sort{Column: ColPointsAfterPickup}

// DefaultAsc reports the direction a freshly selected column starts in.
// Names read best A to Z, numbers best high to low.
func DefaultAsc(column string) bool {
	return column == ColOwner || column == ColPlayer
}

// Apply filters then sorts pickups. The input is not modified.
func Apply(pickups []models.WaiverPickup, f Filter, s Sort) []models.WaiverPickup {
	out := make([]models.WaiverPickup, 0, len(pickups))
	q := strings.ToLower(strings.TrimSpace(f.Query))
	for _, p := range pickups {
		if f.Season != 0 && p.Season != f.Season {
			continue
		}
		if !positionAllowed(p.Position, f.ExcludeKDST, f.ExcludeQB) {
			continue
		}
		if f.MinWeeks > 1 && p.WeeksPlayed < f.MinWeeks {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}

	less := lessFunc(s.Column)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// TopAllTime returns the best pickups by points after pickup across every
// season. Only the position excludes of f apply.
func TopAllTime(pickups []models.WaiverPickup, f Filter) []models.WaiverPickup {
	out := Apply(pickups, Filter{ExcludeKDST: f.ExcludeKDST, ExcludeQB: f.ExcludeQB}, DefaultSort)
	if len(out) > allTimeLimit {
		out = out[:allTimeLimit]
	}
	return out
}

// Seasons lists the distinct seasons present, ascending.
func Seasons(pickups []models.WaiverPickup) []int {
	seen := make(map[int]bool)
	var out []int
	for _, p := range pickups {
		if !seen[p.Season] {
			seen[p.Season] = true
			out = append(out, p.Season)
		}
	}
	sort.Ints(out)
	return out
}

func positionAllowed(pos string, noKDST, noQB bool) bool {
	if noKDST && (pos == "K" || pos == "DST") {
		return false
	}
	if noQB && pos == "QB" {
		return false
	}
	return true
}

func matches(p models.WaiverPickup, q string) bool {
	return strings.Contains(strings.ToLower(p.Player), q) ||
		strings.Contains(strings.ToLower(p.Owner), q) ||
		strings.Contains(strings.ToLower(p.Position), q)
}

func lessFunc(column string) func(a, b models.WaiverPickup) bool {
	switch column {
	case ColYear:
		return func(a, b models.WaiverPickup) bool { return a.Season < b.Season }
	case ColFirstWeek:
		return func(a, b models.WaiverPickup) bool { return a.FirstWeek < b.FirstWeek }
	case ColWeeksPlayed:
		return func(a, b models.WaiverPickup) bool { return a.WeeksPlayed < b.WeeksPlayed }
	case ColAvgPoints:
		return func(a, b models.WaiverPickup) bool { return a.AvgPoints < b.AvgPoints }
	case ColOwner, ColPlayer, ColPos:
		c := collate.New(language.Und, collate.Numeric)
		text := func(p models.WaiverPickup) string {
			switch column {
			case ColOwner:
				return p.Owner
			case ColPlayer:
				return p.Player
			}
			return p.Position
		}
		return func(a, b models.WaiverPickup) bool { return c.CompareString(text(a), text(b)) < 0 }
	default:
		return func(a, b models.WaiverPickup) bool { return a.PointsAfterPickup < b.PointsAfterPickup }
	}
}
