package models

// TeamSeason is a team's regular season totals from teams.json.
type TeamSeason struct {
	Season        int     `json:"season"`
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pf"`
	PointsAgainst float64 `json:"pa"`
}

// Games is the number of games played, never less than one.
func (t TeamSeason) Games() int {
	return max(1, t.Wins+t.Losses+t.Ties)
}

// RegularFinalRow is one line of regular_final_standings.json. Some
// exports carry the playoff finish on this row as well.
type RegularFinalRow struct {
	Team          string   `json:"team"`
	RegularRank   *int     `json:"regular_rank"`
	PlayoffRank   *int     `json:"playoff_rank"`
	Record        string   `json:"record"`
	PointsFor     *float64 `json:"pf"`
	PointsAgainst *float64 `json:"pa"`
}

// PlayoffRow is one line of playoffs_standings.json.
type PlayoffRow struct {
	Team        string `json:"team"`
	PlayoffRank *int   `json:"playoff_rank"`
	Manager     string `json:"manager"`
	Seed        *int   `json:"seed"`
}

// FinalStandings holds the two end-of-season tables of one season.
type FinalStandings struct {
	Regular  []RegularFinalRow
	Playoffs []PlayoffRow
}

// FinalStandingsRow is a team's finish. EndRank is the playoff rank when
// there is one and the regular season rank otherwise.
type FinalStandingsRow struct {
	Team          string  `json:"team"`
	Record        string  `json:"record"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pf"`
	PointsAgainst float64 `json:"pa"`
	RegularRank   *int    `json:"regularRank"`
	PlayoffRank   *int    `json:"playoffRank"`
	Seed          *int    `json:"seed"`
	EndRank       *int    `json:"endRank"`
}

// Medal is the top player at a position for a season and who rostered him.
type Medal struct {
	Position string `json:"position"`
	Player   string `json:"player"`
	Owner    string `json:"owner"`
}

type MedalYear struct {
	Season int     `json:"season"`
	Medals []Medal `json:"medals"`
}
