package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/service"
	"github.com/omarshaarawi/leaguestats/internal/waivers"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSeasonNotFound) {
		http.Error(w, "Season not found", http.StatusNotFound)
		return
	}
	slog.Error("Request failed", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func validateSeason(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, y >= 2000 && y <= 2100
}

func (s *Server) GETHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) GETSeasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"seasons": s.league.Seasons()})
}

func (s *Server) GETDraft(w http.ResponseWriter, r *http.Request) {
	season, ok := validateSeason(chi.URLParam(r, "season"))
	if !ok {
		http.Error(w, "Malformed season", http.StatusBadRequest)
		return
	}
	rows, err := s.league.DraftBoard(season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) GETOwners(w http.ResponseWriter, r *http.Request) {
	season, ok := validateSeason(chi.URLParam(r, "season"))
	if !ok {
		http.Error(w, "Malformed season", http.StatusBadRequest)
		return
	}
	rows, err := s.league.OwnerSummaries(season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) GETDraftLeaders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.league.DraftLeaders())
}

func (s *Server) GETStandings(w http.ResponseWriter, r *http.Request) {
	season, ok := validateSeason(chi.URLParam(r, "season"))
	if !ok {
		http.Error(w, "Malformed season", http.StatusBadRequest)
		return
	}
	week := 0
	if v := r.URL.Query().Get("week"); v != "" {
		w2, err := strconv.Atoi(v)
		if err != nil || w2 < 1 {
			http.Error(w, "Malformed week", http.StatusBadRequest)
			return
		}
		week = w2
	}

	rows, week, err := s.league.Standings(season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, struct {
		Season int                             `json:"season"`
		Week   int                             `json:"week"`
		Rows   []models.CumulativeStandingsRow `json:"rows"`
	}{season, week, rows})
}

func (s *Server) GETFinalStandings(w http.ResponseWriter, r *http.Request) {
	season, ok := validateSeason(chi.URLParam(r, "season"))
	if !ok {
		http.Error(w, "Malformed season", http.StatusBadRequest)
		return
	}
	rows, err := s.league.FinalStandings(season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) GETRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.league.Records())
}

func (s *Server) GETTrophies(w http.ResponseWriter, r *http.Request) {
	season, ok := validateSeason(chi.URLParam(r, "season"))
	if !ok {
		http.Error(w, "Malformed season", http.StatusBadRequest)
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		http.Error(w, "Malformed week", http.StatusBadRequest)
		return
	}
	trophies, err := s.league.Trophies(season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, trophies)
}

func (s *Server) GETWaivers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := waivers.Filter{
		ExcludeKDST: q.Get("noKDST") == "true",
		ExcludeQB:   q.Get("noQB") == "true",
		Query:       q.Get("q"),
	}
	if v := q.Get("season"); v != "" && v != "all" {
		season, ok := validateSeason(v)
		if !ok {
			http.Error(w, "Malformed season", http.StatusBadRequest)
			return
		}
		f.Season = season
	}
	if v := q.Get("minWeeks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Malformed minWeeks", http.StatusBadRequest)
			return
		}
		f.MinWeeks = n
	}

	order := waivers.DefaultSort
	if col := q.Get("sort"); col != "" {
		order = waivers.Sort{Column: col, Asc: waivers.DefaultAsc(col)}
	}
	if v := q.Get("asc"); v != "" {
		order.Asc = v == "true"
	}

	writeJSON(w, map[string]any{
		"rows":       s.league.Waivers(f, order),
		"topAllTime": s.league.TopWaivers(f),
	})
}

func (s *Server) GETMedals(w http.ResponseWriter, r *http.Request) {
	season := 0
	if v := r.URL.Query().Get("season"); v != "" {
		y, ok := validateSeason(v)
		if !ok {
			http.Error(w, "Malformed season", http.StatusBadRequest)
			return
		}
		season = y
	}
	years, err := s.league.Medals(season)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, years)
}
