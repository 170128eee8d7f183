package main

import (
	"context"

	"github.com/unipair/match-service/internal/app"
	"github.com/unipair/match-service/internal/cache"
	"github.com/unipair/match-service/internal/config"
	"github.com/unipair/match-service/internal/db"
	"github.com/unipair/match-service/internal/logger"
	"github.com/unipair/match-service/internal/queue"
	"github.com/unipair/match-service/internal/service/match"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	// Queue client doubles as the service's enqueuer.
	client := queue.NewClient(cfg)
	defer client.Close()

	matchSvc := match.NewService(appCtx, client)
	handler := queue.NewHandler(appCtx, matchSvc)

	scheduler, err := queue.NewScheduler(cfg)
	if err != nil {
		log.Error("failed to build scheduler", "err", err)
		return
	}
	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		return
	}
	defer scheduler.Shutdown()

	log.Info("starting match worker",
		"redis", cfg.Redis.Addr,
		"concurrency", cfg.Queue.Concurrency,
		"sweep_cron", cfg.Queue.SweepCron,
	)

	srv := queue.NewServer(cfg)
	if err := srv.Run(queue.NewMux(handler)); err != nil {
		log.Error("worker stopped", "err", err)
	}
}
