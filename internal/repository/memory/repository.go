package memory

import (
	"sync"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

type standingsKey struct {
	season, week int
}

type Repository struct {
	league    *models.League
	standings map[standingsKey][]models.CumulativeStandingsRow
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{standings: make(map[standingsKey][]models.CumulativeStandingsRow)}
}

// SaveLeague swaps in a freshly loaded dataset and drops every cached
// table computed from the old one.
func (r *Repository) SaveLeague(league *models.League) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.league = league
	r.standings = make(map[standingsKey][]models.CumulativeStandingsRow)
}

// GetLeague returns the current dataset, or nil before the first load.
func (r *Repository) GetLeague() *models.League {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.league
}

func (r *Repository) GetStandings(season, week int) ([]models.CumulativeStandingsRow, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows, ok := r.standings[standingsKey{season, week}]
	return rows, ok
}

// SaveStandings caches a computed table for the dataset it was computed
// from. A table for a dataset that has since been replaced is dropped.
func (r *Repository) SaveStandings(league *models.League, season, week int, rows []models.CumulativeStandingsRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if league != r.league {
		return
	}
	r.standings[standingsKey{season, week}] = rows
}
