// Package store provides the persistence backends behind the profile and
// workout storage ports. Every backend satisfies both profile.Storage and
// workout.Storage; which one runs is a deployment choice, not a code path the
// core knows about.
package store

import (
	"sync"

	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

// Memory keeps everything in process memory. Used by tests and ephemeral
// sessions; a restart loses all data.
type Memory struct {
	mu       sync.Mutex
	profiles map[string]profile.Profile
	workouts map[string][]workout.Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadProfiles implements profile.Storage.
func (m *Memory) LoadProfiles() (map[string]profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyProfiles(m.profiles), nil
}

// SaveProfiles implements profile.Storage.
func (m *Memory) SaveProfiles(profiles map[string]profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = copyProfiles(profiles)
	return nil
}

// LoadWorkouts implements workout.Storage.
func (m *Memory) LoadWorkouts() (map[string][]workout.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyWorkouts(m.workouts), nil
}

// SaveWorkouts implements workout.Storage.
func (m *Memory) SaveWorkouts(workouts map[string][]workout.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workouts = copyWorkouts(workouts)
	return nil
}

func copyProfiles(src map[string]profile.Profile) map[string]profile.Profile {
	dst := make(map[string]profile.Profile, len(src))
	for name, p := range src {
		dst[name] = p
	}
	return dst
}

func copyWorkouts(src map[string][]workout.Entry) map[string][]workout.Entry {
	dst := make(map[string][]workout.Entry, len(src))
	for name, entries := range src {
		cp := make([]workout.Entry, len(entries))
		copy(cp, entries)
		dst[name] = cp
	}
	return dst
}

var (
	_ profile.Storage = (*Memory)(nil)
	_ workout.Storage = (*Memory)(nil)
)
