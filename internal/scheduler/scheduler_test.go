package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/repository/memory"
	"github.com/omarshaarawi/leaguestats/internal/service"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) Load(context.Context, *models.League) (*models.League, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return &models.League{
		Weekly: map[int][]models.WeeklySnapshot{
			2025: {{Week: 3, Rows: []models.WeeklyStandingsRow{{Team: "Alice", Wins: 3}}}},
		},
		Games: map[int][]models.Game{
			2025: {{Season: 2025, Week: 3, TeamA: "Alice", PointsA: 101, TeamB: "Bob", PointsB: 99}},
		},
	}, nil
}

func TestStart_InvalidCron(t *testing.T) {
	svc := service.NewLeagueService(&countingLoader{}, memory.NewRepository(), service.Options{})
	s, err := NewScheduler(svc, nil, Options{Location: time.UTC, RefreshCron: "every now and then"})
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	svc := service.NewLeagueService(&countingLoader{}, memory.NewRepository(), service.Options{})
	s, err := NewScheduler(svc, func(string) error { return nil }, Options{RefreshCron: "*/5 * * * *"})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.NoError(t, s.Stop())
}

func TestJobs(t *testing.T) {
	loader := &countingLoader{}
	repo := memory.NewRepository()
	svc := service.NewLeagueService(loader, repo, service.Options{LastSeason: 2025})

	var sent []string
	s, err := NewScheduler(svc, func(text string) error {
		sent = append(sent, text)
		return nil
	}, Options{Location: time.UTC, RefreshCron: "0 * * * *"})
	require.NoError(t, err)

	s.reload()
	assert.Equal(t, 1, loader.calls)
	require.NotNil(t, repo.GetLeague())

	s.sendStandings()
	s.sendTrophies()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0], "2025 Standings, Week 3")
	assert.Contains(t, sent[1], "Closest Win: Alice (Margin: 2.00)")

	// A failed reload keeps the previous data.
	loader.err = errors.New("store down")
	s.reload()
	assert.NotNil(t, repo.GetLeague())
}
