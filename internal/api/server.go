// Package api exposes allocation over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/field-allocator/internal/allocate"
	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/store"
)

// maxBodyBytes caps the /allocate request body.
const maxBodyBytes = 32 << 20

// Server handles the allocation API. Store may be nil, in which case runs
// are not persisted and /runs answers 404.
type Server struct {
	cfg     *config.Config
	store   store.Store
	limiter *rate.Limiter
}

// New creates a Server.
func New(cfg *config.Config, st store.Store) *Server {
	return &Server{
		cfg:     cfg,
		store:   st,
		limiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.With(s.rateLimit).Post("/allocate", s.allocate)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.listRuns)
		r.Get("/{id}", s.getRun)
	})
	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type allocateResponse struct {
	RunID       string             `json:"run_id,omitempty"`
	Status      model.RunStatus    `json:"status"`
	Assignments []model.Assignment `json:"assignments"`
	Officers    []model.Officer    `json:"officers"`
	Unassigned  []model.Site       `json:"unassigned"`
	InputErrors []model.InputError `json:"input_errors"`
}

func (s *Server) allocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := allocate.Execute(r.Context(), s.cfg.Scoring, s.cfg.Allocation.Workers, req.input())
	if eris.Is(err, allocate.ErrNoOfficers) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":        allocate.ErrNoOfficers.Error(),
			"input_errors": nonNil(run.InputErrors),
		})
		return
	}
	if err != nil {
		zap.L().Error("api: allocation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "allocation failed")
		return
	}

	if s.store != nil {
		if err := s.store.SaveRun(r.Context(), run); err != nil {
			zap.L().Error("api: save run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save run")
			return
		}
	}

	writeJSON(w, http.StatusOK, allocateResponse{
		RunID:       run.ID,
		Status:      run.Status,
		Assignments: nonNil(run.Assignments),
		Officers:    nonNil(run.Officers),
		Unassigned:  nonNil(run.Unassigned),
		InputErrors: nonNil(run.InputErrors),
	})
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run persistence is disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		zap.L().Error("api: list runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(runs))
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run persistence is disabled")
		return
	}
	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(r.Context(), id)
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		zap.L().Error("api: get run failed", zap.String("run_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// nonNil keeps empty lists as [] rather than null in responses.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
