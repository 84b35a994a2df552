package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/leaguestats/internal/draft"
	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/records"
	"github.com/omarshaarawi/leaguestats/internal/repository/memory"
	"github.com/omarshaarawi/leaguestats/internal/standings"
	"github.com/omarshaarawi/leaguestats/internal/tabular"
	"github.com/omarshaarawi/leaguestats/internal/waivers"
)

// ErrSeasonNotFound is returned for a season with no loaded data.
var ErrSeasonNotFound = errors.New("season not found")

const (
	pickSimilarityThreshold = 0.7
	maxPickMatches          = 10
)

// Loader reads the data store. prev is the dataset currently served, or
// nil, and stands in for any file that fails to load.
type Loader interface {
	Load(ctx context.Context, prev *models.League) (*models.League, error)
}

type Options struct {
	// LastSeason is the season the scheduled standings post reports on.
	LastSeason int
	// DraftExclude seasons are left out of the all-time draft leaderboards.
	DraftExclude []int
}

type LeagueService struct {
	loader Loader
	repo   *memory.Repository
	opts   Options
}

func NewLeagueService(loader Loader, repo *memory.Repository, opts Options) *LeagueService {
	return &LeagueService{loader: loader, repo: repo, opts: opts}
}

// Reload reads the data store again and swaps the result in. A load in
// which every file failed leaves the current data in place.
func (s *LeagueService) Reload(ctx context.Context) error {
	prev := s.repo.GetLeague()
	lg, err := s.loader.Load(ctx, prev)
	if err != nil {
		return fmt.Errorf("error loading league data: %w", err)
	}
	if prev != nil && lg.Empty() && len(lg.LoadErrors) > 0 {
		return fmt.Errorf("error loading league data, keeping data loaded at %s: %w",
			prev.LoadedAt.Format(time.RFC3339), errors.Join(lg.LoadErrors...))
	}
	s.repo.SaveLeague(lg)
	slog.Info("League data reloaded", "seasons", lg.Seasons(), "errors", len(lg.LoadErrors))
	return nil
}

func (s *LeagueService) league() *models.League {
	if lg := s.repo.GetLeague(); lg != nil {
		return lg
	}
	return &models.League{}
}

func (s *LeagueService) LastSeason() int {
	return s.opts.LastSeason
}

func (s *LeagueService) Seasons() []int {
	return s.league().Seasons()
}

// DraftBoard joins a season's draft with its outcomes and heat tiers.
func (s *LeagueService) DraftBoard(season int) ([]models.JoinedPickRow, error) {
	lg := s.league()
	picks, ok := lg.Drafts[season]
	if !ok {
		return nil, fmt.Errorf("draft %d: %w", season, ErrSeasonNotFound)
	}
	return draft.Board(season, picks, lg.Scores, lg.Rankings), nil
}

// OwnerSummaries totals a season per owner. The draft board is used when
// the season's draft file exists, the score file alone otherwise.
func (s *LeagueService) OwnerSummaries(season int) ([]models.OwnerSummaryRow, error) {
	if rows, err := s.DraftBoard(season); err == nil {
		return draft.SummarizePicks(rows), nil
	}

	var scores []models.ScoreRecord
	for _, r := range s.league().Scores {
		if r.Season == season {
			scores = append(scores, r)
		}
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("owners %d: %w", season, ErrSeasonNotFound)
	}
	return draft.SummarizeScores(scores), nil
}

func (s *LeagueService) DraftLeaders() draft.Leaderboards {
	return draft.BuildLeaderboards(s.league().Scores, s.opts.DraftExclude)
}

// Standings returns the table through week, or through the latest week
// on file when week is 0 or past it. The week actually used is returned as
// well.
func (s *LeagueService) Standings(season, week int) ([]models.CumulativeStandingsRow, int, error) {
	lg := s.league()
	snaps, ok := lg.Weekly[season]
	if !ok {
		return nil, 0, fmt.Errorf("standings %d: %w", season, ErrSeasonNotFound)
	}
	if last := standings.LastWeek(snaps); week <= 0 || week > last {
		week = last
	}

	if rows, ok := s.repo.GetStandings(season, week); ok {
		return rows, week, nil
	}
	rows := standings.Compute(snaps, lg.Games[season], season, week)
	s.repo.SaveStandings(lg, season, week, rows)
	return rows, week, nil
}

// FinalStandings is a season's end-of-season table.
func (s *LeagueService) FinalStandings(season int) ([]models.FinalStandingsRow, error) {
	lg := s.league()
	teams, hasTeams := lg.Teams[season]
	finals, hasFinals := lg.Finals[season]
	if !hasTeams && !hasFinals {
		return nil, fmt.Errorf("final standings %d: %w", season, ErrSeasonNotFound)
	}
	return standings.Final(teams, finals), nil
}

func (s *LeagueService) Records() records.Report {
	var (
		games []models.Game
		teams []models.TeamSeason
	)
	lg := s.league()
	for _, season := range sortedKeys(lg.Games) {
		games = append(games, lg.Games[season]...)
	}
	for _, season := range sortedKeys(lg.Teams) {
		teams = append(teams, lg.Teams[season]...)
	}
	return records.Build(games, teams)
}

// Medals returns every season's positional medals, newest first, or only
// the given season's when season is not 0.
func (s *LeagueService) Medals(season int) ([]models.MedalYear, error) {
	all := s.league().Medals
	if season == 0 {
		return all, nil
	}
	for _, y := range all {
		if y.Season == season {
			return []models.MedalYear{y}, nil
		}
	}
	return nil, fmt.Errorf("medals %d: %w", season, ErrSeasonNotFound)
}

func (s *LeagueService) Trophies(season, week int) ([]models.Trophy, error) {
	var games []models.Game
	for _, g := range s.league().Games[season] {
		if g.Week == week {
			games = append(games, g)
		}
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("games %d week %d: %w", season, week, ErrSeasonNotFound)
	}
	return records.WeeklyTrophies(games), nil
}

func (s *LeagueService) Waivers(f waivers.Filter, order waivers.Sort) []models.WaiverPickup {
	return waivers.Apply(s.league().Waivers, f, order)
}

func (s *LeagueService) TopWaivers(f waivers.Filter) []models.WaiverPickup {
	return waivers.TopAllTime(s.league().Waivers, f)
}

// PickMatch is a drafted pick found by player name.
type PickMatch struct {
	Row        models.JoinedPickRow `json:"row"`
	Similarity float64              `json:"similarity"`
}

// FindPicks looks a player up across every season's draft board. Names
// match when the query is contained in them or when they are close by
// edit distance, so "mahomes" and "Patrik Mahomes" both find Patrick
// Mahomes.
func (s *LeagueService) FindPicks(query string) []PickMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	lg := s.league()
	var matches []PickMatch
	for _, season := range sortedKeys(lg.Drafts) {
		for _, row := range draft.Board(season, lg.Drafts[season], lg.Scores, lg.Rankings) {
			if sim, ok := similarity(q, row.Pick.Player); ok {
				matches = append(matches, PickMatch{Row: row, Similarity: sim})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Row.Pick.Season > matches[j].Row.Pick.Season
	})
	if len(matches) > maxPickMatches {
		matches = matches[:maxPickMatches]
	}
	return matches
}

func similarity(query, player string) (float64, bool) {
	name := strings.ToLower(player)
	if name == "" {
		return 0, false
	}
	if fuzzy.MatchNormalizedFold(query, name) && strings.Contains(tabular.NormalizeName(name), tabular.NormalizeName(query)) {
		return 1, true
	}
	distance := fuzzy.LevenshteinDistance(query, name)
	maxLen := float64(max(len(query), len(name)))
	sim := 1 - float64(distance)/maxLen
	return sim, sim > pickSimilarityThreshold
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
