package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/leaguestats/internal/api/league"
	"github.com/omarshaarawi/leaguestats/internal/api/static"
	"github.com/omarshaarawi/leaguestats/internal/bot"
	"github.com/omarshaarawi/leaguestats/internal/config"
	"github.com/omarshaarawi/leaguestats/internal/repository/memory"
	"github.com/omarshaarawi/leaguestats/internal/scheduler"
	"github.com/omarshaarawi/leaguestats/internal/server"
	"github.com/omarshaarawi/leaguestats/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	var source static.Source
	if cfg.Data.Dir != "" {
		source = static.NewDirSource(os.DirFS(cfg.Data.Dir))
	} else {
		source = static.NewClient(cfg.Data.BaseURL)
	}
	loader := league.NewLoader(static.NewAPI(source), league.Options{
		FirstSeason:      cfg.League.FirstSeason,
		LastSeason:       cfg.League.LastSeason,
		MaxWeek:          cfg.League.MaxWeek,
		PlayoffStartWeek: cfg.League.PlayoffStartWeek,
	})

	repo := memory.NewRepository()
	leagueService := service.NewLeagueService(loader, repo, service.Options{
		LastSeason:   cfg.League.LastSeason,
		DraftExclude: cfg.League.DraftExcludeSeasons,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := leagueService.Reload(ctx); err != nil {
		return err
	}

	var sendMessage func(string) error
	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, leagueService)
		if err != nil {
			return err
		}
		if cfg.TelegramBot.ChatID != 0 {
			sendMessage = telegramBot.SendMessage
		}

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	location, err := time.LoadLocation(cfg.Schedule.Location)
	if err != nil {
		return err
	}
	sched, err := scheduler.NewScheduler(leagueService, sendMessage, scheduler.Options{
		Location:    location,
		RefreshCron: cfg.Schedule.RefreshCron,
	})
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv, err := server.New(leagueService, server.Options{
		RateLimit:      cfg.HTTP.RateLimit,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
