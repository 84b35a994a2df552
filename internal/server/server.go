// Package server exposes the league projections as a read-only JSON API.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/omarshaarawi/leaguestats/internal/service"
)

type Options struct {
	// RateLimit uses the limiter's formatted syntax, e.g. "120-M".
	RateLimit      string
	AllowedOrigins []string
}

type Server struct {
	league *service.LeagueService
	r      chi.Router
}

func New(league *service.LeagueService, opts Options) (*Server, error) {
	rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", opts.RateLimit, err)
	}
	rateLimit := stdlib.NewMiddleware(limiter.New(memory.NewStore(), rate))

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{league: league, r: r}

	r.Get("/healthz", s.GETHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit.Handler)

		r.Get("/seasons", s.GETSeasons)
		r.Get("/drafts/leaders", s.GETDraftLeaders)
		r.Get("/drafts/{season}", s.GETDraft)
		r.Get("/drafts/{season}/owners", s.GETOwners)
		r.Get("/standings/{season}", s.GETStandings)
		r.Get("/standings/{season}/final", s.GETFinalStandings)
		r.Get("/records", s.GETRecords)
		r.Get("/records/{season}/{week}/trophies", s.GETTrophies)
		r.Get("/waivers", s.GETWaivers)
		r.Get("/medals", s.GETMedals)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}
