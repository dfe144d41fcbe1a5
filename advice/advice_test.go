package advice

import (
	"errors"
	"strings"
	"testing"

	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/profile"
)

func newTestEngine() *Engine {
	return NewEngine(knowledge.NewBase())
}

func profileFor(sport knowledge.Sport, level knowledge.Level) profile.Profile {
	p := profile.Default()
	p.Sport = sport
	p.Level = level
	return p
}

func TestRespondWorkouts(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportFootball, knowledge.LevelBeginner)

	reply := engine.Respond("Can you suggest a workout?", p)

	if !strings.Contains(reply, "beginner football workouts") {
		t.Errorf("reply missing plan header:\n%s", reply)
	}
	for _, item := range []string{"• Jogging 30 mins", "• Squats 3x10", "• Lunges 3x10", "• Push-ups 3x10"} {
		if !strings.Contains(reply, item) {
			t.Errorf("reply missing %q:\n%s", item, reply)
		}
	}
}

func TestRespondWorkoutsFallback(t *testing.T) {
	engine := newTestEngine()
	// general keys its workout table by focus, so level lookups miss
	p := profileFor(knowledge.SportGeneral, knowledge.LevelBeginner)

	reply := engine.Respond("give me some exercise ideas", p)
	if !strings.Contains(reply, "basic cardio like jogging") {
		t.Errorf("expected generic workout suggestion:\n%s", reply)
	}
}

func TestRespondDietPhaseKeyed(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportTennis, knowledge.LevelIntermediate)

	reply := engine.Respond("what should I eat?", p)

	for _, want := range []string{"For tennis, here's what I recommend:", "• Pre-game:", "• Post-game:", "• General:"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestRespondDietGoalKeyed(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportGeneral, knowledge.LevelBeginner)

	reply := engine.Respond("any nutrition advice?", p)

	for _, want := range []string{"• Weight loss:", "• Muscle gain:", "• Endurance:"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestRespondRules(t *testing.T) {
	engine := newTestEngine()

	reply := engine.Respond("how to play?", profileFor(knowledge.SportBasketball, knowledge.LevelBeginner))
	if !strings.Contains(reply, "5 players on each team") {
		t.Errorf("expected basketball rules:\n%s", reply)
	}

	// the general entry has no rules on record
	reply = engine.Respond("what are the rules?", profileFor(knowledge.SportGeneral, knowledge.LevelBeginner))
	if !strings.Contains(reply, "Every sport has its own rules") {
		t.Errorf("expected generic rules answer:\n%s", reply)
	}
}

func TestRespondEquipment(t *testing.T) {
	engine := newTestEngine()

	reply := engine.Respond("what gear should I buy?", profileFor(knowledge.SportFootball, knowledge.LevelBeginner))
	if !strings.Contains(reply, "For football, you'll need:") || !strings.Contains(reply, "• Shin guards") {
		t.Errorf("expected football equipment list:\n%s", reply)
	}

	reply = engine.Respond("what do i need to start?", profileFor(knowledge.SportGeneral, knowledge.LevelBeginner))
	if !strings.Contains(reply, "Basic athletic clothing") {
		t.Errorf("expected generic equipment answer:\n%s", reply)
	}
}

func TestRespondPriority(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportFootball, knowledge.LevelBeginner)

	// matches both workout and diet keywords; workout wins
	reply := engine.Respond("what should I eat before training?", p)
	if !strings.Contains(reply, "workouts for you") {
		t.Errorf("workout category should win on overlap:\n%s", reply)
	}

	// matches diet and equipment; diet wins
	reply = engine.Respond("food and gear tips please", p)
	if !strings.Contains(reply, "here's what I recommend") {
		t.Errorf("diet category should beat equipment:\n%s", reply)
	}
}

func TestRespondFallback(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportTennis, knowledge.LevelBeginner)

	reply := engine.Respond("hello there", p)
	if !strings.Contains(reply, "I can help you with workouts, diet advice, rules, and equipment recommendations for tennis") {
		t.Errorf("unexpected fallback:\n%s", reply)
	}
}

func TestRespondCaseInsensitive(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportFootball, knowledge.LevelAdvanced)

	reply := engine.Respond("WORKOUT PLAN PLEASE", p)
	if !strings.Contains(reply, "advanced football workouts") {
		t.Errorf("matching should be case-insensitive:\n%s", reply)
	}
}

func TestInfo(t *testing.T) {
	engine := newTestEngine()

	card := engine.Info(profileFor(knowledge.SportFootball, knowledge.LevelBeginner))
	for _, want := range []string{
		"11 players on each team",
		"Popular leagues:",
		"• Premier League",
		"Equipment:",
		"• Shin guards",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
	// football has no benefits or getting-started text
	if strings.Contains(card, "Benefits of sports:") || strings.Contains(card, "Getting started:") {
		t.Errorf("card has sections with no data:\n%s", card)
	}

	card = engine.Info(profileFor(knowledge.SportGeneral, knowledge.LevelBeginner))
	for _, want := range []string{
		"Benefits of sports:\nSports improve physical health",
		"Getting started:\nChoose a sport you enjoy",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
	if strings.Contains(card, "Popular leagues:") {
		t.Errorf("general card should have no leagues:\n%s", card)
	}
}

func TestDietPlan(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportTennis, knowledge.LevelBeginner)

	plan, err := engine.DietPlan("muscle gain", p)
	if err != nil {
		t.Fatalf("DietPlan failed: %v", err)
	}

	for _, want := range []string{
		"Calorie surplus with high protein",
		"For tennis specifically:",
		"• Pre-activity:",
		"• Post-activity:",
		"Sample daily meal plan:",
		"• Breakfast: Oatmeal with berries and nuts, Greek yogurt",
		"• Evening: Casein protein or cottage cheese",
	} {
		if !strings.Contains(plan, want) {
			t.Errorf("plan missing %q:\n%s", want, plan)
		}
	}
}

func TestDietPlanGeneralSport(t *testing.T) {
	engine := newTestEngine()
	p := profileFor(knowledge.SportGeneral, knowledge.LevelBeginner)

	plan, err := engine.DietPlan("WEIGHT_LOSS", p)
	if err != nil {
		t.Fatalf("DietPlan failed: %v", err)
	}
	if !strings.Contains(plan, "Calorie deficit with high protein") {
		t.Errorf("plan missing goal guidance:\n%s", plan)
	}
	// general has a goal-keyed diet, so no sport-specific phase section
	if strings.Contains(plan, "specifically:") {
		t.Errorf("plan should not have a sport-specific section:\n%s", plan)
	}
}

func TestDietPlanUnknownGoal(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.DietPlan("get swole", profile.Default())
	if !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("DietPlan error = %v, want ErrUnknownGoal", err)
	}
}
