package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/worker"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_langs=%s->%s", cfg.NativeLang, cfg.TargetLang)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("learn_batch_size=%d review_batch_size=%d", cfg.LearnBatchSize, cfg.ReviewBatchSize)
	log.Debug("reading: lookback_days=%d candidate_limit=%d bundle_bases=%d", cfg.ReadingLookbackDays, cfg.ReadingCandidateLimit, cfg.ReadingBundleBases)
	log.Debug("passage_words=%d..%d", cfg.PassageMinWords, cfg.PassageMaxWords)
	log.Debug("index_refresh_interval=%s", cfg.IndexRefreshInterval)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	catalogRepo := sqlite.NewCatalogRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	readingRepo := sqlite.NewReadingRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	profileService := services.NewProfileService(profileRepo, services.ProfileDefaults{
		NativeLang:       cfg.NativeLang,
		TargetLang:       cfg.TargetLang,
		LearnBatchSize:   cfg.LearnBatchSize,
		DailyReviewWords: cfg.ReviewBatchSize,
	})
	studyService := services.NewStudyService(profileRepo, catalogRepo, progressRepo, sessionRepo, services.StudyConfig{
		LearnBatchSize:  cfg.LearnBatchSize,
		ReviewBatchSize: cfg.ReviewBatchSize,
	})
	readingService := services.NewReadingService(profileRepo, catalogRepo, progressRepo, readingRepo, services.ReadingConfig{
		LookbackDays:   cfg.ReadingLookbackDays,
		CandidateLimit: cfg.ReadingCandidateLimit,
		BundleBases:    cfg.ReadingBundleBases,
	})
	statsService := services.NewStatsService(profileRepo, catalogRepo, statsRepo)
	importService := services.NewImportService(readingRepo, catalogRepo, readingService, services.ImportConfig{
		PassageMinWords: cfg.PassageMinWords,
		PassageMaxWords: cfg.PassageMaxWords,
	})

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	jobQueue := jobs.NewWorkerQueue(importPool, importService, readingService)
	scheduler := jobs.NewIndexScheduler(readingService, cfg.IndexRefreshInterval)

	srv := &api.Server{
		ProfileService: profileService,
		StudyService:   studyService,
		ReadingService: readingService,
		StatsService:   statsService,
		JobQueue:       jobQueue,
		DB:             database,
		ImportLimiter:  api.NewRateLimiter(rate.Every(time.Second), 10),
	}

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	// Warm the passage indexes so the first preview does not pay for the build.
	go func() {
		if err := readingService.RefreshAll(logger.NewContext(ctx, log.WithPrefix("index-warmup"))); err != nil {
			log.Warn("initial index build failed: %v", err)
		}
	}()
	if err := scheduler.Start(ctx); err != nil {
		log.Error("failed to schedule index refresh: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping index scheduler")
	scheduler.Stop()

	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}
