package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/leaguestats/internal/service"
)

const reloadTimeout = 2 * time.Minute

type Options struct {
	Location    *time.Location
	RefreshCron string
}

type Scheduler struct {
	s             gocron.Scheduler
	leagueService *service.LeagueService
	sendMessage   func(string) error
	refreshCron   string
}

// NewScheduler builds the job scheduler. sendMessage may be nil when no
// chat is configured; only the reload job is registered then.
func NewScheduler(leagueService *service.LeagueService, sendMessage func(string) error, opts Options) (*Scheduler, error) {
	location := opts.Location
	if location == nil {
		location = time.Local
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:             s,
		leagueService: leagueService,
		sendMessage:   sendMessage,
		refreshCron:   opts.RefreshCron,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Reload the data store
	_, err = s.s.NewJob(
		gocron.CronJob(s.refreshCron, false),
		gocron.NewTask(s.reload),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create reload job: %w", err)
	}

	if s.sendMessage != nil {
		// Trophies - Tuesday 7:30
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendTrophies),
		)
		if err != nil {
			return fmt.Errorf("failed to create trophies job: %w", err)
		}

		// Current standings - Wednesday 7:30
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendStandings),
		)
		if err != nil {
			return fmt.Errorf("failed to create standings job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := s.leagueService.Reload(ctx); err != nil {
		slog.Error("Failed to reload league data", "error", err)
	}
}

func (s *Scheduler) sendStandings() {
	standings, err := s.leagueService.GetStandings(s.leagueService.LastSeason(), 0)
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	s.sendMessage(standings)
}

func (s *Scheduler) sendTrophies() {
	report, err := s.leagueService.GetLatestTrophies()
	if err != nil {
		slog.Error("Failed to get trophies", "error", err)
		return
	}
	s.sendMessage(report)
}
