// Package server provides the HTTP REST API for the resume ranking engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/InnoShay/HireSight-sub000/internal/annotate"
	"github.com/InnoShay/HireSight-sub000/internal/config"
	"github.com/InnoShay/HireSight-sub000/internal/llm"
	"github.com/InnoShay/HireSight-sub000/internal/pipeline"
	"github.com/InnoShay/HireSight-sub000/internal/store"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// Store is the persistence surface the handlers depend on. *store.DB
// implements it; tests substitute fakes.
type Store interface {
	store.Fetcher
	CreateResume(ctx context.Context, filename, rawText string) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.StoredResume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)
	SaveRanking(ctx context.Context, jobDescription string, analysis types.JobAnalysis, ranked []types.Candidate) (uuid.UUID, error)
	GetRanking(ctx context.Context, id uuid.UUID) (*store.RankingRecord, error)
	ListRankings(ctx context.Context, limit int) ([]store.RankingRecord, error)
}

// RankRunner executes ranking requests. *pipeline.Runner implements it.
type RankRunner interface {
	Run(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	store      Store
	runner     RankRunner
	logger     *zap.Logger
	closers    []func() error
}

// New wires the real collaborators (PostgreSQL store, Gemini embedder and
// annotator) and creates the server.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	keys := llm.NewKeyRing(cfg.GeminiAPIKeys)
	llmCfg := &llm.Config{AnnotateModel: cfg.AnnotateModel, EmbedModel: cfg.EmbedModel}

	embedder, err := llm.NewGeminiEmbedder(ctx, llmCfg, keys)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llmCfg, keys)
	if err != nil {
		database.Close()
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	annotator := annotate.New(client, logger).WithCaps(cfg.MaxJobChars, cfg.MaxResumeChars)
	runner := pipeline.NewRunner(database, embedder, annotator, logger,
		cfg.EmbedConcurrency, cfg.AnnotateTimeoutDuration())

	s := newServer(database, runner, logger, cfg.Port)
	s.closers = append(s.closers, embedder.Close, client.Close, func() error {
		database.Close()
		return nil
	})
	return s, nil
}

// newServer builds the router and HTTP server around the given collaborators.
func newServer(st Store, runner RankRunner, logger *zap.Logger, port int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for full ranking runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Ranking endpoints
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /rank/stream", s.handleRankStream)

	// Resume endpoints (raw text arrives pre-extracted)
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	// Ranking history endpoints
	mux.HandleFunc("GET /rankings", s.handleListRankings)
	mux.HandleFunc("GET /rankings/{id}", s.handleGetRanking)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Warn("failed to close resource", zap.Error(err))
		}
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
