// Package league assembles the full multi-season dataset from the static
// data store.
package league

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/omarshaarawi/leaguestats/internal/api/static"
	"github.com/omarshaarawi/leaguestats/internal/models"
)

type Options struct {
	FirstSeason      int
	LastSeason       int
	MaxWeek          int
	PlayoffStartWeek int
}

type Loader struct {
	api  *static.API
	opts Options
}

func NewLoader(api *static.API, opts Options) *Loader {
	return &Loader{api: api, opts: opts}
}

type seasonData struct {
	season  int
	picks   []models.DraftPick
	weekly  []models.WeeklySnapshot
	games   []models.Game
	teams   []models.TeamSeason
	regular []models.RegularFinalRow
	playoff []models.PlayoffRow
	errs    []error
}

// Load reads every file the dashboard knows about. A missing file is an
// empty dataset. Any other failure is logged and recorded in LoadErrors,
// and that file's data is carried over from prev (which may be nil) so an
// outage of the data store does not wipe what was already served. Only
// context cancellation aborts.
func (l *Loader) Load(ctx context.Context, prev *models.League) (*models.League, error) {
	if prev == nil {
		prev = &models.League{}
	}
	out := &models.League{
		Drafts: make(map[int][]models.DraftPick),
		Weekly: make(map[int][]models.WeeklySnapshot),
		Games:  make(map[int][]models.Game),
		Teams:  make(map[int][]models.TeamSeason),
		Finals: make(map[int]models.FinalStandings),
	}

	scores, err := l.api.GetScores(ctx)
	out.Scores = keep(scores, prev.Scores, err)
	out.LoadErrors = record(out.LoadErrors, err)
	rankings, err := l.api.GetRankings(ctx)
	out.Rankings = keep(rankings, prev.Rankings, err)
	out.LoadErrors = record(out.LoadErrors, err)
	waivers, err := l.api.GetWaivers(ctx)
	out.Waivers = keep(waivers, prev.Waivers, err)
	out.LoadErrors = record(out.LoadErrors, err)
	medals, err := l.api.GetMedals(ctx)
	out.Medals = keep(medals, prev.Medals, err)
	out.LoadErrors = record(out.LoadErrors, err)

	var (
		wg      sync.WaitGroup
		results = make(chan seasonData)
	)
	for season := l.opts.FirstSeason; season <= l.opts.LastSeason; season++ {
		wg.Add(1)
		go func(season int) {
			defer wg.Done()
			results <- l.loadSeason(ctx, season, prev)
		}(season)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for sd := range results {
		if len(sd.picks) > 0 {
			out.Drafts[sd.season] = sd.picks
		}
		if len(sd.weekly) > 0 {
			out.Weekly[sd.season] = sd.weekly
		}
		if len(sd.games) > 0 {
			out.Games[sd.season] = sd.games
		}
		if len(sd.teams) > 0 {
			out.Teams[sd.season] = sd.teams
		}
		if len(sd.regular) > 0 || len(sd.playoff) > 0 {
			out.Finals[sd.season] = models.FinalStandings{Regular: sd.regular, Playoffs: sd.playoff}
		}
		out.LoadErrors = append(out.LoadErrors, sd.errs...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, e := range out.LoadErrors {
		slog.Warn("Failed to load dataset", "error", e)
	}
	out.LoadedAt = time.Now()
	slog.Info("League data loaded",
		"seasons", len(out.Seasons()),
		"scores", len(out.Scores),
		"waivers", len(out.Waivers),
		"errors", len(out.LoadErrors))
	return out, nil
}

func (l *Loader) loadSeason(ctx context.Context, season int, prev *models.League) seasonData {
	sd := seasonData{season: season}

	picks, err := l.api.GetDraft(ctx, season)
	sd.picks = keep(picks, prev.Drafts[season], err)
	sd.errs = record(sd.errs, err)

	weekly, err := l.api.GetWeeklyStandings(ctx, season)
	sd.weekly = keep(weekly, prev.Weekly[season], err)
	sd.errs = record(sd.errs, err)

	teams, err := l.api.GetTeams(ctx, season)
	sd.teams = keep(teams, prev.Teams[season], err)
	sd.errs = record(sd.errs, err)

	regular, err := l.api.GetRegularFinal(ctx, season)
	sd.regular = keep(regular, prev.Finals[season].Regular, err)
	sd.errs = record(sd.errs, err)

	playoff, err := l.api.GetPlayoffs(ctx, season)
	sd.playoff = keep(playoff, prev.Finals[season].Playoffs, err)
	sd.errs = record(sd.errs, err)

	for week := 1; week <= l.opts.MaxWeek; week++ {
		games, err := l.api.GetGames(ctx, season, week, l.opts.PlayoffStartWeek)
		sd.games = append(sd.games, keep(games, weekGames(prev.Games[season], week), err)...)
		sd.errs = record(sd.errs, err)
	}
	return sd
}

func weekGames(games []models.Game, week int) []models.Game {
	var out []models.Game
	for _, g := range games {
		if g.Week == week {
			out = append(out, g)
		}
	}
	return out
}

// failed reports whether err means the file could not be read, as opposed
// to being absent or the load being cancelled.
func failed(err error) bool {
	switch {
	case err == nil, errors.Is(err, static.ErrNotFound):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// keep returns fresh, or previous when the fresh read failed.
func keep[T any](fresh, previous []T, err error) []T {
	if failed(err) {
		return previous
	}
	return fresh
}

func record(errs []error, err error) []error {
	if failed(err) {
		return append(errs, err)
	}
	return errs
}
