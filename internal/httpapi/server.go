// Package httpapi serves primer design, fragment tailing and Tm over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"primertail-core/anneal"
	"primertail-core/assembly"
	"primertail-core/design"
	"primertail-core/thermo"
	"primertail/internal/appcore"
	"primertail/internal/service"
	"primertail/internal/store"
	"primertail/internal/version"
	"primertail/pkg/api"
)

const maxBody = 8 << 20

// Server is the HTTP API. Store may be nil; the primer routes are then absent.
type Server struct {
	router chi.Router
	svc    service.Service
	store  *store.Store
	logger *slog.Logger
}

// NewServer wires routes and middleware.
func NewServer(settings appcore.Settings, st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{router: chi.NewRouter(), svc: service.Service{Settings: settings}, store: st, logger: logger}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger(logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Post("/design", s.handleDesign)
		r.Post("/tail", s.handleTail)
		r.Post("/tm", s.handleTm)
		if st != nil {
			r.Get("/primers", s.handleListPrimers)
			r.Get("/primers/{id}", s.handleGetPrimer)
		}
	})
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down HTTP server")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				logger.Debug("request completed",
					"request_id", chimiddleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, design.ErrOverSpecified),
		errors.Is(err, design.ErrTemplateTooShort),
		errors.Is(err, design.ErrNoAnnealing),
		errors.Is(err, assembly.ErrNonAmplifiableJunction),
		errors.Is(err, thermo.ErrUnknownFormula):
		return http.StatusBadRequest
	case errors.Is(err, design.ErrAssemblyMismatch),
		errors.Is(err, design.ErrNonMonotonic),
		errors.Is(err, anneal.ErrNoProduct),
		errors.Is(err, anneal.ErrAmbiguousProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, api.ErrorV1{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: request body: %w", service.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}
