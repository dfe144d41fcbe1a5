package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

const (
	profilesFile = "user_profiles.json"
	workoutsFile = "user_workouts.json"
)

// File persists profiles and the workout ledger as JSON documents in a data
// directory. Writes go to a temporary file first and are renamed into place,
// so a crashed save leaves the previous state intact.
type File struct {
	dir string
}

// NewFile creates the data directory if needed and returns a file store.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// LoadProfiles implements profile.Storage. A missing file means no data yet
// and loads as an empty map.
func (f *File) LoadProfiles() (map[string]profile.Profile, error) {
	profiles := map[string]profile.Profile{}
	if err := f.load(profilesFile, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SaveProfiles implements profile.Storage.
func (f *File) SaveProfiles(profiles map[string]profile.Profile) error {
	return f.save(profilesFile, profiles)
}

// LoadWorkouts implements workout.Storage.
func (f *File) LoadWorkouts() (map[string][]workout.Entry, error) {
	workouts := map[string][]workout.Entry{}
	if err := f.load(workoutsFile, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// SaveWorkouts implements workout.Storage.
func (f *File) SaveWorkouts(workouts map[string][]workout.Entry) error {
	return f.save(workoutsFile, workouts)
}

func (f *File) load(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (f *File) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(f.dir, name)
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

var (
	_ profile.Storage = (*File)(nil)
	_ workout.Storage = (*File)(nil)
)
