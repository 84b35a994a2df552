package draft

import (
	"math"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

type scoreRange struct {
	lo, hi float64
}

// Tier places score within [lo, hi] in one of five equal bands. A flat
// range or a non-finite score has no tier.
func Tier(score, lo, hi float64) models.HeatTier {
	if math.IsNaN(score) || math.IsInf(score, 0) || hi <= lo {
		return models.HeatNone
	}
	t := math.Max(0, math.Min(1, (score-lo)/(hi-lo)))
	switch {
	case t < 0.2:
		return models.HeatCold
	case t < 0.4:
		return models.HeatCool
	case t < 0.6:
		return models.HeatMild
	case t < 0.8:
		return models.HeatWarm
	default:
		return models.HeatHot
	}
}

// ClassifyHeat returns a copy of rows with Heat set relative to the min and
// max resolved score of each row's round.
func ClassifyHeat(rows []models.JoinedPickRow) []models.JoinedPickRow {
	ranges := make(map[int]*scoreRange)
	for _, r := range rows {
		if r.SeasonScore == nil || !finite(*r.SeasonScore) {
			continue
		}
		s := *r.SeasonScore
		rg, ok := ranges[r.Pick.Round]
		if !ok {
			ranges[r.Pick.Round] = &scoreRange{lo: s, hi: s}
			continue
		}
		rg.lo = math.Min(rg.lo, s)
		rg.hi = math.Max(rg.hi, s)
	}

	out := make([]models.JoinedPickRow, len(rows))
	for i, r := range rows {
		r.Heat = models.HeatNone
		if r.SeasonScore != nil {
			if rg, ok := ranges[r.Pick.Round]; ok {
				r.Heat = Tier(*r.SeasonScore, rg.lo, rg.hi)
			}
		}
		out[i] = r
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
