// Package workout keeps the append-only per-user ledger of logged workouts.
// Entries are immutable once appended; insertion order doubles as
// chronological order since workouts are logged in real time.
package workout

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Intensity is the effort rating of a logged workout.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ErrUnknownIntensity is returned when a value cannot be parsed as an Intensity.
var ErrUnknownIntensity = errors.New("unknown intensity")

// ParseIntensity parses a case-insensitive intensity value.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(strings.ToLower(strings.TrimSpace(s))) {
	case IntensityLow:
		return IntensityLow, nil
	case IntensityMedium:
		return IntensityMedium, nil
	case IntensityHigh:
		return IntensityHigh, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntensity, s)
}

// Entry is one logged workout. Sport is a free-form string and is not
// validated against the knowledge base; the ledger records what the user did,
// not what the advice engine knows about.
type Entry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Sport     string    `json:"sport"`
	Type      string    `json:"type"`
	Duration  Duration  `json:"duration"`
	Intensity Intensity `json:"intensity"`
	Notes     string    `json:"notes,omitempty"`
}

// Storage is the persistence port for the ledger. A Load miss must return an
// empty map and no error; a failed Save must be reported to the caller.
type Storage interface {
	LoadWorkouts() (map[string][]Entry, error)
	SaveWorkouts(map[string][]Entry) error
}

// Log is the append-only workout ledger. Safe for concurrent use; an append
// whose save fails is rolled back in memory and surfaced to the caller.
type Log struct {
	mu      sync.Mutex
	storage Storage
	ledger  map[string][]Entry
	logger  zerolog.Logger

	// test seams
	now   func() time.Time
	newID func() string
}

// NewLog loads the existing ledger from storage. A failed load starts empty.
func NewLog(storage Storage, logger zerolog.Logger) *Log {
	ledger, err := storage.LoadWorkouts()
	if err != nil {
		logger.Warn().Err(err).Msg("loading workout ledger failed, starting empty")
		ledger = nil
	}
	if ledger == nil {
		ledger = map[string][]Entry{}
	}
	return &Log{
		storage: storage,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Append records a workout for username, stamped with the current time, and
// persists the ledger. The stored entry is returned. If the save fails the
// entry is removed again and the error returned — a logged workout is either
// durable or reported lost, never silently dropped.
func (l *Log) Append(username, sport, typ string, duration Duration, intensity Intensity, notes string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		ID:        l.newID(),
		Date:      l.now(),
		Sport:     sport,
		Type:      typ,
		Duration:  duration,
		Intensity: intensity,
		Notes:     notes,
	}
	l.ledger[username] = append(l.ledger[username], entry)

	if err := l.storage.SaveWorkouts(l.ledger); err != nil {
		entries := l.ledger[username]
		l.ledger[username] = entries[:len(entries)-1]
		return Entry{}, fmt.Errorf("save workouts: %w", err)
	}
	return entry, nil
}

// History returns the most recent limit entries for username in chronological
// order (oldest of the window first). limit <= 0 returns the full history.
func (l *Log) History(username string, limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.ledger[username]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
