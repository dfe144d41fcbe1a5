// Package routes wires the HTTP API. Handlers are thin: decode, call the
// domain package, encode. All domain rules live in profile, workout, progress
// and advice.
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/Katemedoshi/SportsPal/advice"
	appmw "github.com/Katemedoshi/SportsPal/internal/http/middleware"
	"github.com/Katemedoshi/SportsPal/internal/jobs"
	"github.com/Katemedoshi/SportsPal/knowledge"
	"github.com/Katemedoshi/SportsPal/news"
	"github.com/Katemedoshi/SportsPal/profile"
	"github.com/Katemedoshi/SportsPal/progress"
	"github.com/Katemedoshi/SportsPal/workout"
)

type Server struct {
	Router    *chi.Mux
	Sess      *scs.SessionManager
	Profiles  *profile.Store
	Workouts  *workout.Log
	Advice    *advice.Engine
	News      *news.Client
	RedisAddr string
}

type ServerOptions struct {
	Sess      *scs.SessionManager
	Profiles  *profile.Store
	Workouts  *workout.Log
	Advice    *advice.Engine
	News      *news.Client
	RedisAddr string
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:    r,
		Sess:      opts.Sess,
		Profiles:  opts.Profiles,
		Workouts:  opts.Workouts,
		Advice:    opts.Advice,
		News:      opts.News,
		RedisAddr: opts.RedisAddr,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/session", s.handleStartSession)
	r.Get("/news", s.handleNews)

	r.Group(func(pr chi.Router) {
		pr.Use(s.sessionToContext)
		pr.Use(appmw.RequireUser)
		pr.Get("/profile", s.handleGetProfile)
		pr.Put("/profile/sport", s.handleSetSport)
		pr.Put("/profile/level", s.handleSetLevel)
		pr.Post("/chat", s.handleChat)
		pr.Post("/workouts", s.handleLogWorkout)
		pr.Get("/workouts", s.handleHistory)
		pr.Get("/stats", s.handleStats)
		pr.Get("/info", s.handleSportInfo)
		pr.Get("/diet-plan", s.handleDietPlan)
		pr.Post("/news/refresh", s.handleNewsRefresh)
	})

	return s
}

func (s *Server) sessionToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// use the SAME key that RequireUser checks
		if username := s.Sess.GetString(r.Context(), "username"); username != "" {
			r = r.WithContext(context.WithValue(r.Context(), appmw.UserKey, username))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) username(r *http.Request) string {
	username, _ := r.Context().Value(appmw.UserKey).(string)
	return username
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}

	s.Sess.Put(r.Context(), "username", req.Username)
	p := s.Profiles.GetOrCreate(req.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"profile":  p,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Profiles.GetOrCreate(s.username(r)))
}

func (s *Server) handleSetSport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport string `json:"sport"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	p, err := s.Profiles.SetSport(s.username(r), req.Sport)
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownSport) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("set sport failed")
		http.Error(w, "could not update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level string `json:"level"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	p, err := s.Profiles.SetLevel(s.username(r), req.Level)
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownLevel) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("set level failed")
		http.Error(w, "could not update profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	p := s.Profiles.GetOrCreate(s.username(r))
	writeJSON(w, http.StatusOK, map[string]string{
		"reply": s.Advice.Respond(req.Message, p),
	})
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sport     string          `json:"sport"`
		Type      string          `json:"type"`
		Duration  json.RawMessage `json:"duration"`
		Intensity string          `json:"intensity"`
		Notes     string          `json:"notes"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Sport) == "" {
		http.Error(w, "sport required", http.StatusBadRequest)
		return
	}

	intensity := workout.IntensityMedium
	if req.Intensity != "" {
		var err error
		if intensity, err = workout.ParseIntensity(req.Intensity); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var duration workout.Duration
	if len(req.Duration) > 0 {
		if err := json.Unmarshal(req.Duration, &duration); err != nil {
			http.Error(w, "invalid duration", http.StatusBadRequest)
			return
		}
	}

	entry, err := s.Workouts.Append(s.username(r), strings.TrimSpace(req.Sport), strings.TrimSpace(req.Type), duration, intensity, req.Notes)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("log workout failed")
		http.Error(w, "could not save workout", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries := s.Workouts.History(s.username(r), limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"workouts": entries,
		"count":    len(entries),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.ForUser(s.Workouts, s.username(r)))
}

func (s *Server) handleSportInfo(w http.ResponseWriter, r *http.Request) {
	p := s.Profiles.GetOrCreate(s.username(r))
	writeJSON(w, http.StatusOK, map[string]string{
		"sport": string(p.Sport),
		"info":  s.Advice.Info(p),
	})
}

func (s *Server) handleDietPlan(w http.ResponseWriter, r *http.Request) {
	goal := r.URL.Query().Get("goal")
	if goal == "" {
		http.Error(w, "goal required", http.StatusBadRequest)
		return
	}

	p := s.Profiles.GetOrCreate(s.username(r))
	plan, err := s.Advice.DietPlan(goal, p)
	if err != nil {
		if errors.Is(err, advice.ErrUnknownGoal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("diet plan failed")
		http.Error(w, "could not build diet plan", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"plan": plan})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	sport := r.URL.Query().Get("sport")
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			count = n
		}
	}

	articles, err := s.News.Latest(r.Context(), sport, count)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("sport", sport).Msg("news fetch failed, serving placeholder")
		articles = news.Placeholder(sport)
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (s *Server) handleNewsRefresh(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	sport := r.URL.Query().Get("sport")
	if sport == "" {
		p := s.Profiles.GetOrCreate(s.username(r))
		sport = string(p.Sport)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: s.RedisAddr})
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("closing asynq client failed")
		}
	}()

	payload, err := json.Marshal(jobs.RefreshNewsPayload{Sport: sport})
	if err != nil {
		http.Error(w, "failed to queue refresh", http.StatusInternalServerError)
		return
	}
	task := asynq.NewTask(jobs.TaskRefreshNews, payload)
	info, err := client.Enqueue(task,
		asynq.Queue("news"),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error().Err(err).Msg("enqueue news refresh failed")
		http.Error(w, "failed to queue refresh", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("task_id", info.ID).Str("queue", info.Queue).Str("sport", sport).Msg("news refresh queued")
	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": info.ID, "sport": sport})
}

func readJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writing response failed")
	}
}
