package draft

import (
	"fmt"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/tabular"
)

func compositeKey(owner, player, position string) string {
	return tabular.NormalizeName(owner) + "__" + tabular.NormalizeName(player) + "__" + position
}

func rankingKey(season int, position, player string) string {
	return fmt.Sprintf("%d__%s__%s", season, position, tabular.NormalizeName(player))
}

type scoreIndex struct {
	byComposite map[string][]models.ScoreRecord
	byPick      map[int][]models.ScoreRecord
}

func indexScores(season int, scores []models.ScoreRecord) scoreIndex {
	idx := scoreIndex{
		byComposite: make(map[string][]models.ScoreRecord),
		byPick:      make(map[int][]models.ScoreRecord),
	}
	for _, s := range scores {
		if s.Season != season {
			continue
		}
		key := compositeKey(s.Owner, s.Player, s.Position)
		idx.byComposite[key] = append(idx.byComposite[key], s)
		idx.byPick[s.DraftPickNumber] = append(idx.byPick[s.DraftPickNumber], s)
	}
	return idx
}

// match finds the score record for a pick: composite key first, then the
// raw pick number preferring a record at the same position.
func (idx scoreIndex) match(p models.DraftPick) (models.ScoreRecord, bool) {
	if found := idx.byComposite[compositeKey(p.ManagerName, p.Player, p.Position)]; len(found) > 0 {
		return found[0], true
	}
	candidates := idx.byPick[p.OverallPick]
	for _, c := range candidates {
		if c.Position == p.Position {
			return c, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return models.ScoreRecord{}, false
}

func indexRankings(rankings []models.RankingRow) map[string]int {
	idx := make(map[string]int, len(rankings))
	for _, r := range rankings {
		key := rankingKey(r.Season, r.Position, r.Player)
		if _, ok := idx[key]; ok {
			continue
		}
		idx[key] = r.Rank
	}
	return idx
}

// Join enriches every pick of one season with its season score, positional
// draft rank, final positional rank and rank delta. It is a left join on the
// picks: the result has exactly one row per pick, in input order, and picks
// without a match keep nil score and rank fields. Heat is left unset; see
// ClassifyHeat.
func Join(season int, picks []models.DraftPick, scores []models.ScoreRecord, rankings []models.RankingRow) []models.JoinedPickRow {
	scoreIdx := indexScores(season, scores)
	rankIdx := indexRankings(rankings)
	draftRanks := PositionalRanks(picks)

	rows := make([]models.JoinedPickRow, len(picks))
	for i, p := range picks {
		draftRank := draftRanks[i]
		row := models.JoinedPickRow{
			Pick:                p,
			PickLabel:           p.Label(),
			PositionalDraftRank: &draftRank,
			EndOfSeasonRank:     "-",
		}

		if m, ok := scoreIdx.match(p); ok {
			score := m.SeasonScore
			row.SeasonScore = &score

			finalPos := m.Position
			if m.FinalPositionRank != nil {
				final := *m.FinalPositionRank
				row.FinalPositionRank = &final
			} else if r, ok := rankIdx[rankingKey(season, p.Position, p.Player)]; ok {
				row.FinalPositionRank = &r
				finalPos = p.Position
			}
			if row.FinalPositionRank != nil {
				row.EndOfSeasonRank = fmt.Sprintf("%s#%d", finalPos, *row.FinalPositionRank)
			}
		}

		if row.PositionalDraftRank != nil && row.FinalPositionRank != nil {
			delta := *row.PositionalDraftRank - *row.FinalPositionRank
			row.DeltaRank = &delta
		}
		rows[i] = row
	}
	return rows
}

// Board is Join followed by ClassifyHeat.
func Board(season int, picks []models.DraftPick, scores []models.ScoreRecord, rankings []models.RankingRow) []models.JoinedPickRow {
	return ClassifyHeat(Join(season, picks, scores, rankings))
}
