package models

import "fmt"

// DraftPick is one selection from a season's draft file.
type DraftPick struct {
	Season      int    `json:"season"`
	Round       int    `json:"round"`
	PickInRound int    `json:"pickInRound"`
	OverallPick int    `json:"overallPick"`
	ManagerName string `json:"managerName"`
	Player      string `json:"player"`
	Position    string `json:"position"`
	NFLTeam     string `json:"nflTeam,omitempty"`
}

// Label renders the pick as "round.pick", e.g. "3.07".
func (p DraftPick) Label() string {
	return fmt.Sprintf("%d.%02d", p.Round, p.PickInRound)
}

// ScoreRecord is one drafted player's season outcome from the score file.
type ScoreRecord struct {
	Season            int     `json:"season"`
	Owner             string  `json:"owner"`
	Player            string  `json:"player"`
	Position          string  `json:"position"`
	DraftPickNumber   int     `json:"draftPickNumber"`
	FinalPositionRank *int    `json:"finalPositionRank"`
	SeasonScore       float64 `json:"seasonScore"`

	// Optional columns some exports carry.
	Points       *float64 `json:"points,omitempty"`
	DraftPosRank *int     `json:"draftPosRank,omitempty"`
}

// RankingRow is one line of the season positional rankings table.
type RankingRow struct {
	Season   int    `json:"season"`
	Position string `json:"position"`
	Rank     int    `json:"rank"`
	Player   string `json:"player"`
}

// HeatTier buckets a pick's score relative to the rest of its round.
type HeatTier int

const (
	HeatNone HeatTier = iota
	HeatCold
	HeatCool
	HeatMild
	HeatWarm
	HeatHot
)

func (h HeatTier) String() string {
	switch h {
	case HeatCold:
		return "cold"
	case HeatCool:
		return "cool"
	case HeatMild:
		return "mild"
	case HeatWarm:
		return "warm"
	case HeatHot:
		return "hot"
	default:
		return ""
	}
}

func (h HeatTier) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HeatTier) UnmarshalText(b []byte) error {
	for t := HeatNone; t <= HeatHot; t++ {
		if t.String() == string(b) {
			*h = t
			return nil
		}
	}
	return fmt.Errorf("unknown heat tier %q", b)
}

// JoinedPickRow is a draft pick enriched with its season outcome. Pointer
// fields are nil when the join could not resolve them.
type JoinedPickRow struct {
	Pick                DraftPick `json:"pick"`
	PickLabel           string    `json:"pickLabel"`
	SeasonScore         *float64  `json:"seasonScore"`
	PositionalDraftRank *int      `json:"positionalDraftRank"`
	FinalPositionRank   *int      `json:"finalPositionRank"`
	DeltaRank           *int      `json:"deltaRank"`
	EndOfSeasonRank     string    `json:"endOfSeasonRank"`
	Heat                HeatTier  `json:"heat"`
}

// OwnerSummaryRow aggregates picks per owner. AverageScore is nil when none
// of the owner's picks has a resolved score.
type OwnerSummaryRow struct {
	Owner          string   `json:"owner"`
	Season         int      `json:"season,omitempty"`
	Picks          int      `json:"picks"`
	ResolvedScores int      `json:"resolvedScores"`
	TotalScore     float64  `json:"totalScore"`
	AverageScore   *float64 `json:"averageScore"`
}

// WaiverPickup is one row of the waiver pickups file.
type WaiverPickup struct {
	Season            int     `json:"season"`
	Owner             string  `json:"owner"`
	Player            string  `json:"player"`
	Position          string  `json:"position"`
	FirstWeek         int     `json:"firstWeek"`
	WeeksPlayed       int     `json:"weeksPlayed"`
	PointsAfterPickup float64 `json:"pointsAfterPickup"`
	AvgPoints         float64 `json:"avgPoints"`
}
