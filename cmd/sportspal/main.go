// Command sportspal is the terminal front end: chat with the assistant, log
// workouts and review progress against the same file store the API uses.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Katemedoshi/SportsPal/advice"
	"github.com/Katemedoshi/SportsPal/cache"
	"github.com/Katemedoshi/SportsPal/internal/config"
	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/news"
	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/progress"
	"github.com/Katemedoshi/SportsPal/store"
	"github.com/Katemedoshi/SportsPal/workout"
)

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runCLI(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage()
		return nil
	case "version", "--version", "-v":
		fmt.Println("SportsPal v0.1.0")
		return nil
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	switch args[0] {
	case "chat":
		return app.chat(strings.Join(args[1:], " "))
	case "sport":
		return app.setSport(args[1:])
	case "level":
		return app.setLevel(args[1:])
	case "log":
		return app.logWorkout(args[1:])
	case "history":
		return app.history()
	case "stats":
		return app.stats()
	case "info":
		return app.info()
	case "diet":
		return app.diet(strings.Join(args[1:], " "))
	case "news":
		return app.showNews(strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage() {
	fmt.Println("Usage: sportspal <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  chat <message>                        Ask the assistant a question")
	fmt.Println("  sport <name>                          Set your main sport")
	fmt.Println("  level <name>                          Set your skill level")
	fmt.Println("  log <sport> <type> <mins> [intensity] Log a workout")
	fmt.Println("  history                               Show logged workouts")
	fmt.Println("  stats                                 Show your progress summary")
	fmt.Println("  info                                  Show rules, leagues and equipment for your sport")
	fmt.Println("  diet <goal>                           Get a diet plan for a goal")
	fmt.Println("  news [sport]                          Show latest headlines")
	fmt.Println("  help, version")
	fmt.Println("Environment:")
	fmt.Println("  SPORTSPAL_USER  Username to act as (default: default)")
	fmt.Println("  DATA_DIR        Where state is stored (default: ~/.sportspal)")
	fmt.Println("  NEWS_API_KEY    NewsAPI key for live headlines (optional)")
}

type app struct {
	username string
	profiles *profile.Store
	workouts *workout.Log
	engine   *advice.Engine
	news     *news.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, _, err := store.Open(context.Background(), cfg.DatabaseURL, cfg.SQLitePath, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	username := os.Getenv("SPORTSPAL_USER")
	if username == "" {
		username = "default"
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	newsOpts := []news.Option{news.WithBaseURL(cfg.News.BaseURL)}
	if fc, err := cache.NewNewsCache(); err == nil {
		newsOpts = append(newsOpts, news.WithCache(cache.NewNewsAdapter(fc), cfg.News.CacheTTL))
	}

	return &app{
		username: username,
		profiles: profile.NewStore(st, logger),
		workouts: workout.NewLog(st, logger),
		engine:   advice.NewEngine(knowledge.NewBase()),
		news:     news.New(cfg.News.APIKey, newsOpts...),
	}, nil
}

func (a *app) chat(message string) error {
	if message == "" {
		return fmt.Errorf("usage: sportspal chat <message>")
	}
	p := a.profiles.GetOrCreate(a.username)
	fmt.Println(a.engine.Respond(message, p))
	return nil
}

func (a *app) setSport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sportspal sport <name>")
	}
	p, err := a.profiles.SetSport(a.username, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Main sport set to %s\n", p.Sport)
	return nil
}

func (a *app) setLevel(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sportspal level <name>")
	}
	p, err := a.profiles.SetLevel(a.username, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Skill level set to %s\n", p.Level)
	return nil
}

func (a *app) logWorkout(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: sportspal log <sport> <type> <mins> [intensity] [notes]")
	}

	intensity := workout.IntensityMedium
	if len(args) > 3 {
		var err error
		if intensity, err = workout.ParseIntensity(args[3]); err != nil {
			return err
		}
	}
	notes := ""
	if len(args) > 4 {
		notes = strings.Join(args[4:], " ")
	}

	entry, err := a.workouts.Append(a.username, args[0], args[1], workout.ParseDuration(args[2]), intensity, notes)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s (%s) for %s min, intensity %s\n", entry.Sport, entry.Type, entry.Duration, entry.Intensity)
	return nil
}

func (a *app) history() error {
	entries := a.workouts.History(a.username, 0)
	if len(entries) == 0 {
		fmt.Println("No workouts logged yet.")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("• %s  %s %s, %s min, %s", e.Date.Format("2006-01-02"), e.Sport, e.Type, e.Duration, e.Intensity)
		if e.Notes != "" {
			line += " (" + e.Notes + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) stats() error {
	stats := progress.ForUser(a.workouts, a.username)
	fmt.Print(progress.FormatReport(a.username, stats))
	return nil
}

func (a *app) info() error {
	p := a.profiles.GetOrCreate(a.username)
	fmt.Println(a.engine.Info(p))
	return nil
}

func (a *app) diet(goal string) error {
	if goal == "" {
		return fmt.Errorf("usage: sportspal diet <goal> (one of: %s)", strings.Join(knowledge.Goals(), ", "))
	}
	p := a.profiles.GetOrCreate(a.username)
	plan, err := a.engine.DietPlan(goal, p)
	if err != nil {
		return err
	}
	fmt.Println(plan)
	return nil
}

func (a *app) showNews(sport string) error {
	if sport == "" {
		p := a.profiles.GetOrCreate(a.username)
		sport = string(p.Sport)
	}

	articles, err := a.news.Latest(context.Background(), sport, 0)
	if err != nil {
		articles = news.Placeholder(sport)
	}
	for _, article := range articles {
		fmt.Printf("• %s\n  %s\n", article.Title, article.Description)
		if article.URL != "" {
			fmt.Printf("  %s\n", article.URL)
		}
	}
	return nil
}
