package static

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/tabular"
)

type API struct {
	source Source
}

func NewAPI(source Source) *API {
	return &API{source: source}
}

func (a *API) GetDraft(ctx context.Context, season int) ([]models.DraftPick, error) {
	b, err := a.source.Fetch(ctx, DraftPath(season))
	if err != nil {
		return nil, fmt.Errorf("fetching draft %d: %w", season, err)
	}
	picks, err := ParseDraft(season, string(b))
	if err != nil {
		return nil, fmt.Errorf("decoding draft %d: %w", season, err)
	}
	return picks, nil
}

func (a *API) GetScores(ctx context.Context) ([]models.ScoreRecord, error) {
	b, err := a.source.Fetch(ctx, ScoresPath)
	if err != nil {
		return nil, fmt.Errorf("fetching draft scores: %w", err)
	}
	scores, err := ParseScores(string(b))
	if err != nil {
		return nil, fmt.Errorf("decoding draft scores: %w", err)
	}
	return scores, nil
}

func (a *API) GetRankings(ctx context.Context) ([]models.RankingRow, error) {
	b, err := a.source.Fetch(ctx, RankingsPath)
	if err != nil {
		return nil, fmt.Errorf("fetching season rankings: %w", err)
	}
	rankings, err := ParseRankings(string(b))
	if err != nil {
		return nil, fmt.Errorf("decoding season rankings: %w", err)
	}
	return rankings, nil
}

func (a *API) GetWaivers(ctx context.Context) ([]models.WaiverPickup, error) {
	b, err := a.source.Fetch(ctx, WaiversPath)
	if err != nil {
		return nil, fmt.Errorf("fetching waivers: %w", err)
	}
	waivers, err := ParseWaivers(string(b))
	if err != nil {
		return nil, fmt.Errorf("decoding waivers: %w", err)
	}
	return waivers, nil
}

func (a *API) GetWeeklyStandings(ctx context.Context, season int) ([]models.WeeklySnapshot, error) {
	b, err := a.source.Fetch(ctx, WeeklyStandingsPath(season))
	if err != nil {
		return nil, fmt.Errorf("fetching weekly standings %d: %w", season, err)
	}
	snaps, err := ParseWeeklyStandings(b)
	if err != nil {
		return nil, fmt.Errorf("decoding weekly standings %d: %w", season, err)
	}
	return snaps, nil
}

// GetGames reads one week's game center export. Weeks at or after
// playoffStart are flagged as playoff games.
func (a *API) GetGames(ctx context.Context, season, week, playoffStart int) ([]models.Game, error) {
	b, err := a.source.Fetch(ctx, GameCenterPath(season, week))
	if err != nil {
		return nil, fmt.Errorf("fetching games %d/%d: %w", season, week, err)
	}
	games, err := ParseGames(season, week, b)
	if err != nil {
		return nil, fmt.Errorf("decoding games %d/%d: %w", season, week, err)
	}
	for i := range games {
		games[i].Playoff = playoffStart > 0 && week >= playoffStart
	}
	return games, nil
}

// ParseDraft decodes a season draft file. Exports disagree on column names,
// so overall pick, manager and position each accept several spellings.
// Picks come back ordered by overall pick.
func ParseDraft(season int, text string) ([]models.DraftPick, error) {
	records, err := tabular.Parse(text, tabular.Tab)
	if err != nil {
		return nil, err
	}

	picks := make([]models.DraftPick, 0, len(records))
	for _, r := range records {
		picks = append(picks, models.DraftPick{
			Season:      season,
			Round:       tabular.Int(r.Get("Round")),
			PickInRound: tabular.Int(r.Get("PickInRound")),
			OverallPick: tabular.Int(r.First("Overall", "OverallPick", "Pick")),
			ManagerName: r.First("ManagerName", "Owner"),
			Player:      r.Get("Player"),
			Position:    tabular.Upper(r.First("Pos", "Position")),
			NFLTeam:     r.Get("NFLTeam"),
		})
	}
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].OverallPick < picks[j].OverallPick })
	return picks, nil
}

// ParseScores decodes the all-seasons score file.
func ParseScores(text string) ([]models.ScoreRecord, error) {
	records, err := tabular.Parse(text, tabular.Tab)
	if err != nil {
		return nil, err
	}

	scores := make([]models.ScoreRecord, 0, len(records))
	for _, r := range records {
		s := models.ScoreRecord{
			Season:            tabular.Int(r.Get("Year")),
			Owner:             r.Get("Owner"),
			Player:            r.Get("Player"),
			Position:          tabular.Upper(r.Get("Pos")),
			DraftPickNumber:   tabular.Int(r.Get("Pick")),
			FinalPositionRank: tabular.IntOrNull(r.Get("Final_Pos_Rank")),
			SeasonScore:       tabular.Num(r.Get("Score"), 0),
			DraftPosRank:      tabular.IntOrNull(r.Get("Draft_Pos_Rank")),
		}
		if p, ok := tabular.NumOrNull(r.Get("Points")); ok {
			s.Points = &p
		}
		scores = append(scores, s)
	}
	return scores, nil
}

// ParseRankings decodes the comma separated season positional rankings.
func ParseRankings(text string) ([]models.RankingRow, error) {
	records, err := tabular.Parse(text, tabular.Comma)
	if err != nil {
		return nil, err
	}

	rows := make([]models.RankingRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, models.RankingRow{
			Season:   tabular.Int(r.First("Year", "Season")),
			Position: tabular.Upper(r.First("Position", "Pos")),
			Rank:     tabular.Int(r.Get("Rank")),
			Player:   r.Get("Player"),
		})
	}
	return rows, nil
}

func ParseWaivers(text string) ([]models.WaiverPickup, error) {
	records, err := tabular.Parse(text, tabular.Tab)
	if err != nil {
		return nil, err
	}

	rows := make([]models.WaiverPickup, 0, len(records))
	for _, r := range records {
		rows = append(rows, models.WaiverPickup{
			Season:            tabular.Int(r.Get("Year")),
			Owner:             r.Get("Owner"),
			Player:            r.Get("Player"),
			Position:          r.Get("Pos"),
			FirstWeek:         tabular.Int(r.Get("FirstWeek")),
			WeeksPlayed:       tabular.Int(r.Get("WeeksPlayed")),
			PointsAfterPickup: tabular.Num(r.Get("PointsAfterPickup"), 0),
			AvgPoints:         tabular.Num(r.Get("AvgPoints"), 0),
		})
	}
	return rows, nil
}

// ParseWeeklyStandings decodes a season's weekly_standings.json, ordered
// by week.
func ParseWeeklyStandings(b []byte) ([]models.WeeklySnapshot, error) {
	var snaps []models.WeeklySnapshot
	if err := json.Unmarshal(b, &snaps); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].Week < snaps[j].Week })
	return snaps, nil
}

// ParseGames decodes a game center CSV, where every team has a row naming
// its opponent, and pairs the two rows of each matchup into one Game. A
// matchup with only one row falls back on that row's opponent columns.
func ParseGames(season, week int, b []byte) ([]models.Game, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	records := tabular.Zip(header, rows)
	if len(records) == 0 {
		return nil, nil
	}

	for _, col := range []string{"Owner", "Total", "Opponent", "Opponent Total"} {
		if _, ok := records[0].GetFold(col); !ok {
			return nil, fmt.Errorf("missing column %q: %w", col, tabular.ErrMalformedInput)
		}
	}

	type entry struct {
		owner, opponent      string
		total, opponentTotal float64
	}
	var keys []string
	byMatchup := make(map[string][]entry)
	for _, rec := range records {
		owner, _ := rec.GetFold("Owner")
		opp, _ := rec.GetFold("Opponent")
		if owner == "" || opp == "" {
			continue
		}
		total, _ := rec.GetFold("Total")
		oppTotal, _ := rec.GetFold("Opponent Total")

		pair := []string{owner, opp}
		sort.Strings(pair)
		key := strings.Join(pair, "::")
		if _, ok := byMatchup[key]; !ok {
			keys = append(keys, key)
		}
		byMatchup[key] = append(byMatchup[key], entry{
			owner:         owner,
			opponent:      opp,
			total:         tabular.LocaleNum(total),
			opponentTotal: tabular.LocaleNum(oppTotal),
		})
	}

	games := make([]models.Game, 0, len(keys))
	for _, key := range keys {
		entries := byMatchup[key]
		g := models.Game{Season: season, Week: week}
		switch len(entries) {
		case 2:
			g.TeamA, g.PointsA = entries[0].owner, entries[0].total
			g.TeamB, g.PointsB = entries[1].owner, entries[1].total
		case 1:
			g.TeamA, g.PointsA = entries[0].owner, entries[0].total
			g.TeamB, g.PointsB = entries[0].opponent, entries[0].opponentTotal
		default:
			continue
		}
		games = append(games, g)
	}
	return games, nil
}
