package main

import (
	"context"
	"net/http"
	"os"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Katemedoshi/SportsPal/advice"
	"github.com/Katemedoshi/SportsPal/cache"
	"github.com/Katemedoshi/SportsPal/internal/config"
	"github.com/Katemedoshi/SportsPal/internal/http/routes"
	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/news"
	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/store"
	"github.com/Katemedoshi/SportsPal/workout"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config failed")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	st, cleanup, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.SQLitePath, cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening store failed")
	}
	defer cleanup()
	logStoreBackend(cfg, logger)

	profiles := profile.NewStore(st, logger)
	workouts := workout.NewLog(st, logger)
	engine := advice.NewEngine(knowledge.NewBase())

	newsClient := newNewsClient(cfg, logger)

	sess := scs.New()
	sess.Lifetime = 12 * time.Hour
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	s := routes.New(routes.ServerOptions{
		Sess:      sess,
		Profiles:  profiles,
		Workouts:  workouts,
		Advice:    engine,
		News:      newsClient,
		RedisAddr: cfg.RedisAddr,
	})
	h := hlog.NewHandler(logger)(s.Router)

	logger.Info().Str("port", cfg.Port).Msg("starting api")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: sess.LoadAndSave(h)}
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func logStoreBackend(cfg *config.Config, logger zerolog.Logger) {
	switch {
	case cfg.HasPostgres():
		logger.Info().Msg("using postgres store")
	case cfg.HasSQLite():
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite store")
	default:
		logger.Info().Str("dir", cfg.DataDir).Msg("using file store")
	}
}

func newNewsClient(cfg *config.Config, logger zerolog.Logger) *news.Client {
	opts := []news.Option{news.WithBaseURL(cfg.News.BaseURL)}
	if fc, err := cache.NewNewsCache(); err != nil {
		logger.Warn().Err(err).Msg("news cache unavailable, fetching uncached")
	} else {
		opts = append(opts, news.WithCache(cache.NewNewsAdapter(fc), cfg.News.CacheTTL))
	}
	if !cfg.HasNews() {
		logger.Info().Msg("no news api key configured, serving placeholder articles")
	}
	return news.New(cfg.News.APIKey, opts...)
}
