// Package api is the HTTP surface backing the authoring UI: problem
// analysis, model listing, and snippet rendering. The server is stateless
// per request; the browser owns form state and retry decisions.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mr-romero/desmos-code-hub/internal/llm"
	"github.com/mr-romero/desmos-code-hub/internal/store"
)

// ProviderFactory builds the LLM provider for one request. Swapped for a
// mock-backed factory in tests.
type ProviderFactory func(ctx context.Context, cfg llm.Config, repo store.EventRepo) (llm.Provider, error)

// Server holds the API's dependencies.
type Server struct {
	cfg    llm.Config
	events store.EventRepo
	log    *zap.Logger

	// CORSOrigins are the allowed browser origins. Empty allows any, which
	// suits local authoring against a dev frontend.
	CORSOrigins []string

	// NewProvider defaults to llm.NewProvider.
	NewProvider ProviderFactory
}

// NewServer wires a Server. A nil logger falls back to zap.NewNop.
func NewServer(cfg llm.Config, events store.EventRepo, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:         cfg,
		events:      events,
		log:         log,
		NewProvider: llm.NewProvider,
	}
}

// Router assembles the chi mux with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/models", s.handleModels)
		r.Post("/snippets", s.handleSnippets)
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled, then drains with a
// short grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
