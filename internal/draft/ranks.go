// Package draft joins draft picks to season outcomes and derives the
// per-pick and per-owner projections used by the draft boards.
package draft

import (
	"sort"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

// PositionalRanks numbers each pick within its position in draft order:
// the first RB taken is RB 1, the second RB 2, whatever the round.
// The result is indexed like picks. Equal overall picks keep input order.
func PositionalRanks(picks []models.DraftPick) []int {
	order := make([]int, len(picks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return picks[order[a]].OverallPick < picks[order[b]].OverallPick
	})

	counters := make(map[string]int)
	ranks := make([]int, len(picks))
	for _, idx := range order {
		pos := picks[idx].Position
		counters[pos]++
		ranks[idx] = counters[pos]
	}
	return ranks
}
