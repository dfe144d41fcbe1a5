package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/Katemedoshi/SportsPal/cache"
	"github.com/Katemedoshi/SportsPal/internal/config"
	"github.com/Katemedoshi/SportsPal/internal/email"
	"github.com/Katemedoshi/SportsPal/internal/jobs"
	"github.com/Katemedoshi/SportsPal/news"
	"github.com/Katemedoshi/SportsPal/store"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "worker").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config failed")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// same backend selection as cmd/api, so jobs see the same ledger
	st, cleanup, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.SQLitePath, cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening store failed")
	}
	defer cleanup()

	var sender email.Sender = email.StdoutSender{}
	if cfg.HasSMTP() {
		sender = email.NewSMTPSender(cfg.SMTPAddr, cfg.EmailFrom)
	}

	newsOpts := []news.Option{news.WithBaseURL(cfg.News.BaseURL)}
	if fc, err := cache.NewNewsCache(); err != nil {
		logger.Warn().Err(err).Msg("news cache unavailable")
	} else {
		newsOpts = append(newsOpts, news.WithCache(cache.NewNewsAdapter(fc), cfg.News.CacheTTL))
	}
	newsClient := news.New(cfg.News.APIKey, newsOpts...)

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency:    8,
		StrictPriority: false,
		Queues: map[string]int{
			"news":    10,
			"default": 5,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TaskRefreshNews, jobs.NewRefreshNewsHandler(newsClient, logger))
	mux.HandleFunc(jobs.TaskWeeklyReport, jobs.NewWeeklyReportHandler(st, sender, logger))

	logger.Info().Msg("worker running")
	logger.Fatal().Err(srv.Run(mux)).Msg("worker stopped")
}
