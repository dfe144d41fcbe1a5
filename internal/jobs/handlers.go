package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/Katemedoshi/SportsPal/internal/email"
	"github.com/Katemedoshi/SportsPal/news"
	"github.com/Katemedoshi/SportsPal/progress"
	"github.com/Katemedoshi/SportsPal/workout"
)

// NewRefreshNewsHandler returns the TaskRefreshNews handler: it re-fetches
// headlines through the client, which warms the shared cache as a side effect.
func NewRefreshNewsHandler(client *news.Client, logger zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p RefreshNewsPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.Error().Err(err).Msg("bad refresh payload")
			return err
		}

		start := time.Now()
		articles, err := client.Latest(ctx, p.Sport, p.Count)
		took := time.Since(start)

		if err != nil {
			if IsRetryableError(err) {
				logger.Warn().Err(err).Str("sport", p.Sport).Dur("took", took).Msg("news refresh retryable error")
				return err
			}
			logger.Error().Err(err).Str("sport", p.Sport).Dur("took", took).Msg("news refresh permanent error, dropping job")
			return nil
		}
		logger.Info().Str("sport", p.Sport).Int("articles", len(articles)).Dur("took", took).Msg("news refreshed")
		return nil
	}
}

// NewWeeklyReportHandler returns the TaskWeeklyReport handler. The ledger is
// loaded from storage on every run, so the report covers workouts logged after
// the worker started.
func NewWeeklyReportHandler(storage workout.Storage, sender email.Sender, logger zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p WeeklyReportPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.Error().Err(err).Msg("bad report payload")
			return err
		}

		ledger, err := storage.LoadWorkouts()
		if err != nil {
			return fmt.Errorf("load workouts: %w", err)
		}
		stats := progress.Compute(ledger[p.Username], time.Now())
		report := progress.FormatReport(p.Username, stats)

		if err := sender.Send(p.Email, "Your weekly SportsPal report", report); err != nil {
			if IsRetryableError(err) {
				logger.Warn().Err(err).Str("user", p.Username).Msg("weekly report retryable error")
				return err
			}
			logger.Error().Err(err).Str("user", p.Username).Msg("weekly report permanent error, dropping job")
			return nil
		}
		logger.Info().Str("user", p.Username).Int("workouts", stats.TotalWorkouts).Msg("weekly report sent")
		return nil
	}
}

// IsRetryableError decides whether a failed job should go back on the queue.
func IsRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())

	// network/connectivity issues
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dns") {
		return true
	}

	// NewsAPI rate limiting
	if strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") {
		return true
	}

	// temporary server errors
	if strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") {
		return true
	}

	// everything else (bad key, bad payload) is permanent
	return false
}
