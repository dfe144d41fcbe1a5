// Package profile owns per-user profile records: main sport, skill level,
// goals and progress counters. Profiles are keyed by username, created with
// defaults on first reference and never deleted.
package profile

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Katemedoshi/SportsPal/knowledge"
)

// Progress holds a user's tracked progress counters.
type Progress struct {
	WorkoutsCompleted int                `json:"workouts_completed"`
	Weight            *float64           `json:"weight"`
	Measurements      map[string]float64 `json:"measurements"`
}

// Profile is one user's configuration.
type Profile struct {
	Sport    knowledge.Sport `json:"sport"`
	Level    knowledge.Level `json:"level"`
	Goals    []string        `json:"goals"`
	Progress Progress        `json:"progress"`
}

// Default returns the profile assigned to a username on first reference.
func Default() Profile {
	return Profile{
		Sport: knowledge.SportGeneral,
		Level: knowledge.LevelBeginner,
		Goals: []string{"Get fit"},
		Progress: Progress{
			Measurements: map[string]float64{},
		},
	}
}

// normalize degrades invalid enum values read back from storage instead of
// failing: unknown sports become general, unknown levels beginner.
func (p Profile) normalize() Profile {
	if !p.Sport.Valid() {
		p.Sport = knowledge.SportGeneral
	}
	if !p.Level.Valid() {
		p.Level = knowledge.LevelBeginner
	}
	if p.Progress.Measurements == nil {
		p.Progress.Measurements = map[string]float64{}
	}
	return p
}

// Storage is the persistence port for profiles. A Load miss (no data yet) must
// return an empty map and no error; a failed Save must be reported so the
// caller never loses a mutation silently.
type Storage interface {
	LoadProfiles() (map[string]Profile, error)
	SaveProfiles(map[string]Profile) error
}

// Store resolves and mutates profiles. All operations are safe for concurrent
// use; mutations persist through the storage port and roll back in memory if
// the save fails.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	profiles map[string]Profile
	logger   zerolog.Logger
}

// NewStore loads existing profiles from storage. A failed load starts empty.
func NewStore(storage Storage, logger zerolog.Logger) *Store {
	profiles, err := storage.LoadProfiles()
	if err != nil {
		logger.Warn().Err(err).Msg("loading profiles failed, starting empty")
		profiles = nil
	}
	if profiles == nil {
		profiles = map[string]Profile{}
	}
	for name, p := range profiles {
		profiles[name] = p.normalize()
	}
	return &Store{storage: storage, profiles: profiles, logger: logger}
}

// GetOrCreate returns the profile for username, inserting the default profile
// first if none exists. It never fails; a save error on first insert is logged
// and the profile stays available in memory.
func (s *Store) GetOrCreate(username string) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[username]; ok {
		return p
	}
	p := Default()
	s.profiles[username] = p
	if err := s.storage.SaveProfiles(s.profiles); err != nil {
		s.logger.Error().Err(err).Str("user", username).Msg("persisting new profile failed")
	}
	return p
}

// SetSport validates and updates a user's main sport. Invalid values are
// rejected with knowledge.ErrUnknownSport.
func (s *Store) SetSport(username, sport string) (Profile, error) {
	parsed, err := knowledge.ParseSport(sport)
	if err != nil {
		return Profile{}, err
	}
	return s.update(username, func(p Profile) Profile {
		p.Sport = parsed
		return p
	})
}

// SetLevel validates and updates a user's skill level. Invalid values are
// rejected with knowledge.ErrUnknownLevel.
func (s *Store) SetLevel(username, level string) (Profile, error) {
	parsed, err := knowledge.ParseLevel(level)
	if err != nil {
		return Profile{}, err
	}
	return s.update(username, func(p Profile) Profile {
		p.Level = parsed
		return p
	})
}

// update applies fn to the user's profile (creating the default first if
// needed) and persists the result. The previous state is restored when the
// save fails, so memory and storage never drift apart.
func (s *Store) update(username string, fn func(Profile) Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.profiles[username]
	base := prev
	if !existed {
		base = Default()
	}
	next := fn(base)
	s.profiles[username] = next

	if err := s.storage.SaveProfiles(s.profiles); err != nil {
		if existed {
			s.profiles[username] = prev
		} else {
			delete(s.profiles, username)
		}
		return Profile{}, fmt.Errorf("save profiles: %w", err)
	}
	return next, nil
}
