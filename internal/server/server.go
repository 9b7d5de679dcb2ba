// Package server exposes a menu model over HTTP.
//
// Routes:
//
//	GET  /menu                 title, visibility and entries
//	POST /menu/navigate/{id}   navigate to a route
//	POST /menu/active/{id}     mark an entry active
//	GET  /healthz              liveness
//	GET  /metrics              Prometheus metrics, when configured
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/viewmenu/internal/logging"
	"github.com/atomicstack/viewmenu/internal/logging/events"
	"github.com/atomicstack/viewmenu/internal/menu"
)

const (
	DefaultAddr            = "127.0.0.1:8765"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Model is the part of the menu builder the server drives.
type Model interface {
	Items() []menu.Item
	MenuTitle() string
	MenuVisible() bool
	Lookup(route string) (*menu.Entry, bool)
	NavigateTo(route string) (menu.View, error)
	SetActive(viewID string)
}

// Recorder receives one call per served request.
type Recorder interface {
	Request(pattern string, status int)
}

// Option configures a Server.
type Option func(*Server)

func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// Server serves one menu model.
type Server struct {
	model           Model
	addr            string
	shutdownTimeout time.Duration
	metrics         http.Handler
	recorder        Recorder
	router          chi.Router

	mu      sync.RWMutex
	running bool
	bound   string
}

// New builds the router for model.
func New(model Model, opts ...Option) *Server {
	s := &Server{
		model:           model,
		addr:            DefaultAddr,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", s.handleMenu)
		r.Post("/navigate/{id}", s.handleNavigate)
		r.Post("/active/{id}", s.handleActive)
	})
	return r
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		events.Server.Request(r.Method, r.URL.Path, status)
		if s.recorder != nil {
			s.recorder.Request(pattern, status)
		}
	})
}

type menuResponse struct {
	Title   string      `json:"title"`
	Visible bool        `json:"visible"`
	Entries []menu.Item `json:"entries"`
}

type navigateResponse struct {
	Route string `json:"route"`
	View  string `json:"view,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMenu(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) snapshot() menuResponse {
	return menuResponse{
		Title:   s.model.MenuTitle(),
		Visible: s.model.MenuVisible(),
		Entries: s.model.Items(),
	}
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.model.Lookup(id); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown route %q", id)})
		return
	}
	view, err := s.model.NavigateTo(id)
	if err != nil {
		logging.Error(fmt.Errorf("navigate %s: %w", id, err))
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	resp := navigateResponse{Route: id}
	if view != nil {
		resp.View = menu.TypeName(view)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.model.Lookup(id); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown route %q", id)})
		return
	}
	s.model.SetActive(id)
	writeJSON(w, http.StatusOK, s.snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error(fmt.Errorf("encode response: %w", err))
	}
}

// IsRunning reports whether the listener is bound.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address once running, else the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bound != "" {
		return s.bound
	}
	return s.addr
}

// Serve listens on the configured address and blocks until ctx is done,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	s.mu.Lock()
	s.running = true
	s.bound = ln.Addr().String()
	s.mu.Unlock()
	events.Server.Listen(ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		events.Server.Shutdown(err)
		return err
	})
	return g.Wait()
}
