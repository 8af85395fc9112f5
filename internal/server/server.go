// Package server exposes the assessment engine as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/finassess/assessment-engine/internal/cache"
	"github.com/finassess/assessment-engine/internal/calculation"
	"github.com/finassess/assessment-engine/internal/config"
	"github.com/finassess/assessment-engine/internal/narrative"
	"github.com/finassess/assessment-engine/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Options configures optional collaborators. Nil Cache disables result
// caching; nil Store disables the /v1/assessments persistence routes.
type Options struct {
	Cache      cache.Cache
	CacheTTL   time.Duration
	Store      *store.Store
	Narrator   *narrative.Generator
	Logger     *zap.Logger
	RateLimit  int           // requests per client per RateWindow; 0 disables limiting
	RateWindow time.Duration // defaults to one minute
}

type Server struct {
	engine   *calculation.CalculationEngine
	parser   *config.InputParser
	cache    cache.Cache
	cacheTTL time.Duration
	store    *store.Store
	narrator *narrative.Generator
	logger   *zap.Logger
	limiter  *RateLimiter
}

func New(engine *calculation.CalculationEngine, opts Options) *Server {
	s := &Server{
		engine:   engine,
		parser:   &config.InputParser{TaxTables: engine.TaxTables},
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		store:    opts.Store,
		narrator: opts.Narrator,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = time.Hour
	}
	if s.narrator == nil {
		s.narrator = narrative.NewGenerator(nil, s.logger.Sugar())
	}
	if opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		s.limiter = NewRateLimiter(opts.RateLimit, window)
	}
	return s
}

// Close releases background resources owned by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Post("/normalize", s.cached("normalize", s.handleNormalize))
		r.Post("/tax", s.cached("tax", s.handleTax))
		r.Post("/amortize", s.cached("amortize", s.handleAmortize))
		r.Post("/payoff", s.cached("payoff", s.handlePayoff))
		r.Post("/growth", s.cached("growth", s.handleGrowth))

		r.Post("/assessments", s.handleCreateAssessment)
		r.Get("/assessments", s.handleListAssessments)
		r.Get("/assessments/{id}", s.handleGetAssessment)
		r.Post("/assessments/{id}/summary", s.handleSummarize)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// computeFunc evaluates a pure endpoint from its request body.
type computeFunc func(body []byte) (any, error)

// badRequest marks errors caused by the client's payload.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// cached wraps a pure endpoint: identical bodies are answered from the cache.
func (s *Server) cached(namespace string, compute computeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read request body")
			return
		}

		var key string
		if s.cache != nil {
			key = cache.Key(namespace, body)
			if hit, err := s.cache.Get(r.Context(), key); err == nil {
				w.Header().Set("X-Cache", "HIT")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, hit)
				return
			} else if !errors.Is(err, cache.ErrMiss) {
				s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
			}
		}

		result, err := compute(body)
		if err != nil {
			var br badRequest
			if errors.As(err, &br) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error("compute failed", zap.String("endpoint", namespace), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		payload, err := json.Marshal(result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if s.cache != nil {
			if err := s.cache.Set(r.Context(), key, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
			w.Header().Set("X-Cache", "MISS")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}
}

func decodeBody(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest{err}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
