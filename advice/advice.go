// Package advice turns free-text questions into canned coaching answers. The
// classifier is an ordered table of (category, keyword set, renderer) tuples
// evaluated top-down; the first category with a keyword hit wins. Matching is
// case-insensitive substring containment; no stemming, no scoring.
package advice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/profile"
)

// ErrUnknownGoal is returned by DietPlan for goals absent from the goal-keyed
// diet table.
var ErrUnknownGoal = errors.New("unknown goal")

// Engine answers free-text questions from the knowledge base and the caller's
// profile. Answers degrade to generic guidance instead of failing when the
// sport or level has no data on record.
type Engine struct {
	kb         *knowledge.Base
	categories []category
}

type category struct {
	name     string
	keywords []string
	render   func(e *Engine, p profile.Profile) string
}

// NewEngine builds an engine over kb. The category order is part of the
// contract: workout beats diet beats rules beats equipment when an input
// matches several keyword sets.
func NewEngine(kb *knowledge.Base) *Engine {
	e := &Engine{kb: kb}
	e.categories = []category{
		{
			name:     "workout",
			keywords: []string{"workout", "exercise", "training"},
			render:   (*Engine).renderWorkouts,
		},
		{
			name:     "diet",
			keywords: []string{"diet", "nutrition", "food", "eat"},
			render:   (*Engine).renderDiet,
		},
		{
			name:     "rules",
			keywords: []string{"rule", "how to play", "basics"},
			render:   (*Engine).renderRules,
		},
		{
			name:     "equipment",
			keywords: []string{"equipment", "gear", "what do i need"},
			render:   (*Engine).renderEquipment,
		},
	}
	return e
}

// Respond classifies input and renders an answer for the caller's profile.
// It never fails; inputs that match no category get the capability menu.
func (e *Engine) Respond(input string, p profile.Profile) string {
	lowered := strings.ToLower(input)
	for _, c := range e.categories {
		for _, kw := range c.keywords {
			if strings.Contains(lowered, kw) {
				return c.render(e, p)
			}
		}
	}
	return fmt.Sprintf("As your sports assistant, I can help you with workouts, diet advice, rules, and equipment recommendations for %s. What would you like to know more about?", p.Sport)
}

func (e *Engine) renderWorkouts(p profile.Profile) string {
	plan, ok := e.kb.Workouts(p.Sport, p.Level)
	if !ok {
		return "I'd recommend starting with basic cardio like jogging, and some strength exercises like push-ups and squats."
	}
	return fmt.Sprintf("Here are some %s %s workouts for you:\n%s", p.Level, p.Sport, bullets(plan))
}

func (e *Engine) renderDiet(p profile.Profile) string {
	entry, ok := e.kb.Entry(p.Sport)
	if !ok || entry.Diet.Kind == 0 {
		return "A balanced diet with adequate protein, complex carbs, and healthy fats is key for any sport."
	}

	result := fmt.Sprintf("For %s, here's what I recommend:\n", p.Sport)
	switch entry.Diet.Kind {
	case knowledge.DietPhaseKeyed:
		result += fmt.Sprintf("• Pre-game: %s\n", entry.Diet.Pre)
		result += fmt.Sprintf("• Post-game: %s\n", entry.Diet.Post)
		result += fmt.Sprintf("• General: %s", entry.Diet.General)
	case knowledge.DietGoalKeyed:
		lines := make([]string, 0, len(entry.Diet.ByGoal))
		for _, goal := range knowledge.Goals() {
			if guidance, ok := entry.Diet.ByGoal[goal]; ok {
				lines = append(lines, fmt.Sprintf("• %s: %s", goalLabel(goal), guidance))
			}
		}
		result += strings.Join(lines, "\n")
	}
	return result
}

func (e *Engine) renderRules(p profile.Profile) string {
	entry, ok := e.kb.Entry(p.Sport)
	if !ok || entry.Rules == "" {
		return "Every sport has its own rules. What specific sport would you like to learn about?"
	}
	return entry.Rules
}

func (e *Engine) renderEquipment(p profile.Profile) string {
	entry, ok := e.kb.Entry(p.Sport)
	if !ok || len(entry.Equipment) == 0 {
		return "Basic athletic clothing and appropriate footwear are essential for most sports."
	}
	return fmt.Sprintf("For %s, you'll need:\n%s", p.Sport, bullets(entry.Equipment))
}

// Info renders the reference card for the caller's sport: rules, leagues and
// equipment for the real sports, benefits and getting-started guidance for the
// general entry. Sections with no data are skipped.
func (e *Engine) Info(p profile.Profile) string {
	entry, ok := e.kb.Entry(p.Sport)
	if !ok {
		return fmt.Sprintf("No information on record for %s yet.", p.Sport)
	}

	var sections []string
	if entry.Rules != "" {
		sections = append(sections, entry.Rules)
	}
	if len(entry.PopularLeagues) > 0 {
		sections = append(sections, "Popular leagues:\n"+bullets(entry.PopularLeagues))
	}
	if len(entry.Equipment) > 0 {
		sections = append(sections, "Equipment:\n"+bullets(entry.Equipment))
	}
	if entry.Benefits != "" {
		sections = append(sections, "Benefits of sports:\n"+entry.Benefits)
	}
	if entry.GettingStarted != "" {
		sections = append(sections, "Getting started:\n"+entry.GettingStarted)
	}
	return strings.Join(sections, "\n\n")
}

// sampleMealPlan is the goal-independent daily plan appended to diet plans.
var sampleMealPlan = [][2]string{
	{"Breakfast", "Oatmeal with berries and nuts, Greek yogurt"},
	{"Mid-Morning", "Banana with almond butter"},
	{"Lunch", "Grilled chicken salad with quinoa"},
	{"Afternoon", "Protein smoothie with spinach"},
	{"Dinner", "Salmon with sweet potato and vegetables"},
	{"Evening", "Casein protein or cottage cheese"},
}

// DietPlan renders the personalized diet plan for a training goal: the
// goal-keyed general guidance, the sport's phase-keyed advice when the
// profile's sport has one, and a sample daily meal plan.
func (e *Engine) DietPlan(goal string, p profile.Profile) (string, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(goal)), " ", "_")

	general, _ := e.kb.Entry(knowledge.SportGeneral)
	guidance, ok := general.Diet.ByGoal[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGoal, goal)
	}

	result := guidance + "\n"

	if entry, ok := e.kb.Entry(p.Sport); ok && entry.Diet.Kind == knowledge.DietPhaseKeyed {
		result += fmt.Sprintf("\nFor %s specifically:\n", p.Sport)
		result += fmt.Sprintf("• Pre-activity: %s\n", entry.Diet.Pre)
		result += fmt.Sprintf("• Post-activity: %s\n", entry.Diet.Post)
		result += fmt.Sprintf("• General: %s\n", entry.Diet.General)
	}

	result += "\nSample daily meal plan:\n"
	for _, meal := range sampleMealPlan {
		result += fmt.Sprintf("• %s: %s\n", meal[0], meal[1])
	}
	return result, nil
}

// bullets renders items one per line with the • convention UIs rely on.
func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// goalLabel turns a goal key into display form: weight_loss -> Weight loss.
func goalLabel(goal string) string {
	label := strings.ReplaceAll(goal, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
