package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goserg/inhouse/internal/auth"
	"github.com/goserg/inhouse/internal/cache/mem"
	"github.com/goserg/inhouse/internal/config"
	"github.com/goserg/inhouse/internal/draft"
	"github.com/goserg/inhouse/internal/hero"
	"github.com/goserg/inhouse/internal/logger"
	"github.com/goserg/inhouse/internal/service"
	"github.com/goserg/inhouse/internal/storage/sqlite"
	"github.com/goserg/inhouse/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	l := logger.New(cfg.Server.LogLevel, cfg.Server.Debug)

	store, err := sqlite.New(l, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	seed := cfg.Draft.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table := hero.Default()
	strategy, err := draft.NewStrategy(cfg.Draft.Strategy, table, rand.New(rand.NewSource(seed)), l)
	if err != nil {
		return err
	}
	limit, err := cfg.Draft.Limit()
	if err != nil {
		return err
	}
	matchService := service.New(service.Config{
		Iterations:    cfg.Rating.Iterations,
		LearningRate:  cfg.Rating.LearningRate,
		MaxHistory:    cfg.Rating.MaxHistory,
		StreakMaxDays: cfg.Streak.MaxDays,
		Pity:          cfg.Pity,
		HeroesShown:   cfg.Draft.HeroesShown,
		RerollLimit:   limit,
		Seed:          seed,
	}, store, store, mem.New(), table, strategy, l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := matchService.LoadPreferences(ctx); err != nil {
		return err
	}
	if _, err := matchService.RefreshRatings(ctx); err != nil {
		return err
	}

	authService := auth.New(cfg.Auth)
	if !authService.Enabled() {
		l.Warn("auth secret is empty, every request may change match state")
	}
	server, err := web.New(matchService, cfg.Server, authService, l)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		l.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			l.WithError(err).Error("shutdown")
		}
	}()
	l.WithField("port", cfg.Server.Port).Info("server started")
	return server.Serve()
}
