// Package knowledge holds the static per-sport reference data used by the
// advice engine: rules, leagues, equipment, leveled workout plans and dietary
// guidance. The data is read-only; entries share the underlying maps and
// slices, so callers must not mutate what they receive.
package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// Sport identifies a sport known to the knowledge base.
type Sport string

const (
	SportGeneral    Sport = "general"
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportTennis     Sport = "tennis"
)

// Level identifies a skill level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var (
	// ErrUnknownSport is returned when a value cannot be parsed as a Sport.
	ErrUnknownSport = errors.New("unknown sport")
	// ErrUnknownLevel is returned when a value cannot be parsed as a Level.
	ErrUnknownLevel = errors.New("unknown level")
)

// Sports lists all sports in stable order.
func Sports() []Sport {
	return []Sport{SportGeneral, SportFootball, SportBasketball, SportTennis}
}

// Levels lists all skill levels in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Goals lists the training goals of the goal-keyed diet table in display order.
func Goals() []string {
	return []string{"weight_loss", "muscle_gain", "endurance"}
}

// ParseSport parses a case-insensitive sport name.
func ParseSport(s string) (Sport, error) {
	switch Sport(strings.ToLower(strings.TrimSpace(s))) {
	case SportGeneral:
		return SportGeneral, nil
	case SportFootball:
		return SportFootball, nil
	case SportBasketball:
		return SportBasketball, nil
	case SportTennis:
		return SportTennis, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, s)
}

// ParseLevel parses a case-insensitive skill level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, nil
	case LevelIntermediate:
		return LevelIntermediate, nil
	case LevelAdvanced:
		return LevelAdvanced, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Valid reports whether s is a known sport.
func (s Sport) Valid() bool {
	_, err := ParseSport(string(s))
	return err == nil
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil
}

// DietKind tags the two diet table schemas: phase-keyed tables describe
// pre/post activity meals, goal-keyed tables map training goals to guidance.
type DietKind int

const (
	DietPhaseKeyed DietKind = iota + 1
	DietGoalKeyed
)

// DietTable is a tagged variant. Phase-keyed entries use Pre, Post and
// General; goal-keyed entries use ByGoal. Callers must branch on Kind.
type DietTable struct {
	Kind    DietKind
	Pre     string
	Post    string
	General string
	ByGoal  map[string]string
}

// PhaseDiet builds a phase-keyed diet table.
func PhaseDiet(pre, post, general string) DietTable {
	return DietTable{Kind: DietPhaseKeyed, Pre: pre, Post: post, General: general}
}

// GoalDiet builds a goal-keyed diet table.
func GoalDiet(byGoal map[string]string) DietTable {
	return DietTable{Kind: DietGoalKeyed, ByGoal: byGoal}
}

// Entry is the immutable reference record for one sport. Workouts is keyed by
// level name for the real sports; the general entry keys it by training focus
// (cardio/strength/flexibility) instead, so level lookups never match and
// callers fall through to a generic suggestion. Rules, Benefits and
// GettingStarted are optional; empty means the sport has nothing on record.
type Entry struct {
	Rules          string
	PopularLeagues []string
	Equipment      []string
	Workouts       map[string][]string
	Diet           DietTable
	Benefits       string
	GettingStarted string
}

// Base is the static knowledge base.
type Base struct {
	entries map[Sport]Entry
}

// NewBase builds the knowledge base with its built-in data set.
func NewBase() *Base {
	return &Base{entries: map[Sport]Entry{
		SportFootball: {
			Rules:          "Football is played with 11 players on each team. The objective is to score by getting the ball into the opponent's goal.",
			PopularLeagues: []string{"Premier League", "La Liga", "Bundesliga", "Serie A", "Ligue 1"},
			Equipment:      []string{"Football", "Cleats", "Shin guards", "Jersey", "Shorts"},
			Workouts: map[string][]string{
				"beginner":     {"Jogging 30 mins", "Squats 3x10", "Lunges 3x10", "Push-ups 3x10"},
				"intermediate": {"Sprints 10x100m", "Box jumps 3x10", "Burpees 3x15", "Plank 3x1min"},
				"advanced":     {"Interval training", "Plyometrics", "Hill runs", "Circuit training"},
			},
			Diet: PhaseDiet(
				"High-carb meal 3-4 hours before (pasta, rice, potatoes)",
				"Protein-rich recovery meal (chicken, fish, tofu) with carbs",
				"Balanced diet with 55-65% carbs, 15-20% protein, 20-25% fat",
			),
		},
		SportBasketball: {
			Rules:          "Basketball is played with 5 players on each team. Points are scored by shooting the ball through the opponent's hoop.",
			PopularLeagues: []string{"NBA", "EuroLeague", "CBA"},
			Equipment:      []string{"Basketball", "Basketball shoes", "Jersey", "Shorts"},
			Workouts: map[string][]string{
				"beginner":     {"Dribbling drills", "Jump shots 50/day", "Layups 30/day", "Defensive slides"},
				"intermediate": {"Three-point shooting", "Suicide runs", "Agility ladder", "Medicine ball throws"},
				"advanced":     {"Plyometric jumps", "Full-court presses", "Game-situation drills", "Vertical jump training"},
			},
			Diet: PhaseDiet(
				"Moderate carbs with protein (chicken sandwich, banana)",
				"Protein shake + complex carbs (sweet potato, brown rice)",
				"High protein (1.4-1.7g/kg body weight), moderate carbs, healthy fats",
			),
		},
		SportTennis: {
			Rules:          "Tennis is played between two players (singles) or two teams of two players (doubles). Players use rackets to hit a ball over a net.",
			PopularLeagues: []string{"ATP Tour", "WTA Tour", "Grand Slam tournaments"},
			Equipment:      []string{"Tennis racket", "Tennis balls", "Appropriate shoes", "Comfortable clothing"},
			Workouts: map[string][]string{
				"beginner":     {"Forehand/backhand drills", "Footwork patterns", "Serve practice", "Wall rallies"},
				"intermediate": {"Match simulations", "Interval sprints", "Core strengthening", "Multi-ball drills"},
				"advanced":     {"High-intensity interval training", "Plyometric exercises", "Advanced stroke techniques", "Mental toughness training"},
			},
			Diet: PhaseDiet(
				"Light meal with carbs and protein (fish with rice, energy bar)",
				"Electrolyte replacement + protein (salmon with quinoa, nuts)",
				"Balanced diet with emphasis on hydration and quick energy sources",
			),
		},
		SportGeneral: {
			Benefits:       "Sports improve physical health, mental well-being, teamwork skills, and discipline.",
			GettingStarted: "Choose a sport you enjoy, get basic equipment, find a local club or coach, and start with beginner exercises.",
			Workouts: map[string][]string{
				"cardio":      {"Running", "Cycling", "Swimming", "Jump rope"},
				"strength":    {"Bodyweight exercises", "Weight training", "Resistance bands", "Calisthenics"},
				"flexibility": {"Yoga", "Dynamic stretching", "Pilates", "Mobility drills"},
			},
			Diet: GoalDiet(map[string]string{
				"weight_loss": "Calorie deficit with high protein, moderate fat, low carbs",
				"muscle_gain": "Calorie surplus with high protein, moderate carbs, healthy fats",
				"endurance":   "High carb intake (6-10g/kg), moderate protein, adequate hydration",
			}),
		},
	}}
}

// Entry returns the record for a sport.
func (b *Base) Entry(s Sport) (Entry, bool) {
	e, ok := b.entries[s]
	return e, ok
}

// Workouts returns the workout plan for a sport at a level. The second return
// is false when the sport is unknown or the level has no plan (the general
// entry keys its table by focus, so it always misses here).
func (b *Base) Workouts(s Sport, l Level) ([]string, bool) {
	e, ok := b.entries[s]
	if !ok {
		return nil, false
	}
	plan, ok := e.Workouts[string(l)]
	return plan, ok
}
