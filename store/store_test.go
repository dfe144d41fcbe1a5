package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/workout"
)

func sampleProfiles() map[string]profile.Profile {
	p := profile.Default()
	p.Sport = knowledge.SportTennis
	p.Level = knowledge.LevelIntermediate
	return map[string]profile.Profile{"alice": p}
}

func sampleWorkouts() map[string][]workout.Entry {
	return map[string][]workout.Entry{
		"alice": {
			{
				ID:        "w-1",
				Date:      time.Date(2025, 5, 20, 18, 0, 0, 0, time.UTC),
				Sport:     "tennis",
				Type:      "practice",
				Duration:  workout.Minutes(45),
				Intensity: workout.IntensityHigh,
				Notes:     "serve drills",
			},
			{
				ID:        "w-2",
				Date:      time.Date(2025, 5, 21, 18, 0, 0, 0, time.UTC),
				Sport:     "running",
				Type:      "cardio",
				Duration:  workout.ParseDuration("abc"),
				Intensity: workout.IntensityLow,
			},
		},
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	// empty store loads empty maps
	profiles, err := m.LoadProfiles()
	require.NoError(t, err)
	require.Empty(t, profiles)

	require.NoError(t, m.SaveProfiles(sampleProfiles()))
	require.NoError(t, m.SaveWorkouts(sampleWorkouts()))

	profiles, err = m.LoadProfiles()
	require.NoError(t, err)
	require.Equal(t, knowledge.SportTennis, profiles["alice"].Sport)

	workouts, err := m.LoadWorkouts()
	require.NoError(t, err)
	require.Len(t, workouts["alice"], 2)
	require.Equal(t, "w-1", workouts["alice"][0].ID)
}

func TestMemoryCopiesOnSave(t *testing.T) {
	m := NewMemory()
	src := sampleWorkouts()
	require.NoError(t, m.SaveWorkouts(src))

	// mutating the caller's map must not leak into the store
	src["alice"][0].Sport = "mutated"

	workouts, err := m.LoadWorkouts()
	require.NoError(t, err)
	require.Equal(t, "tennis", workouts["alice"][0].Sport)
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	f, err := NewFile(dir)
	require.NoError(t, err)

	// missing files load as empty maps
	profiles, err := f.LoadProfiles()
	require.NoError(t, err)
	require.Empty(t, profiles)

	require.NoError(t, f.SaveProfiles(sampleProfiles()))
	require.NoError(t, f.SaveWorkouts(sampleWorkouts()))

	// reopen to prove the data hit disk
	f2, err := NewFile(dir)
	require.NoError(t, err)

	profiles, err = f2.LoadProfiles()
	require.NoError(t, err)
	require.Equal(t, knowledge.SportTennis, profiles["alice"].Sport)
	require.Equal(t, knowledge.LevelIntermediate, profiles["alice"].Level)

	workouts, err := f2.LoadWorkouts()
	require.NoError(t, err)
	require.Len(t, workouts["alice"], 2)

	// the garbage duration survives the round trip unchanged
	require.Equal(t, "abc", workouts["alice"][1].Duration.String())
	mins, ok := workouts["alice"][0].Duration.Minutes()
	require.True(t, ok)
	require.Equal(t, 45, mins)
}

func TestFileCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFile(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sportspal.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	profiles, err := s.LoadProfiles()
	require.NoError(t, err)
	require.Empty(t, profiles)

	require.NoError(t, s.SaveProfiles(sampleProfiles()))
	require.NoError(t, s.SaveWorkouts(sampleWorkouts()))
	require.NoError(t, s.Close())

	// reopen the database file
	s2, err := NewSQLite(path)
	require.NoError(t, err)
	defer s2.Close() //nolint:errcheck

	profiles, err = s2.LoadProfiles()
	require.NoError(t, err)
	require.Equal(t, knowledge.SportTennis, profiles["alice"].Sport)

	workouts, err := s2.LoadWorkouts()
	require.NoError(t, err)
	require.Len(t, workouts["alice"], 2)
	require.Equal(t, "abc", workouts["alice"][1].Duration.String())

	// saving again overwrites rather than duplicating rows
	require.NoError(t, s2.SaveProfiles(sampleProfiles()))
	profiles, err = s2.LoadProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	st, cleanup, err := Open(ctx, "", filepath.Join(t.TempDir(), "app.db"), "")
	require.NoError(t, err)
	require.IsType(t, &SQLite{}, st)
	cleanup()

	st, cleanup, err = Open(ctx, "", "", t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &File{}, st)
	cleanup()
}

func TestFileRejectsCorruptData(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_profiles.json"), []byte("{not json"), 0o600))

	_, err = f.LoadProfiles()
	require.Error(t, err)
}
