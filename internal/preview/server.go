// Package preview serves a generated site locally, optionally reloading open
// pages whenever the site is rebuilt.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kwebdev/pagegen/internal/logfields"
)

// Config holds preview server settings.
type Config struct {
	Port       int
	Dir        string // directory to serve
	AllowAll   bool   // allow all CORS origins
	LiveReload bool   // inject the reload client and expose /livereload
}

// Server is the local preview server.
type Server struct {
	cfg        Config
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a preview server for cfg.Dir.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, hub: NewHub(logger), logger: logger}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	var files http.Handler = http.FileServer(http.Dir(s.cfg.Dir))
	if s.cfg.LiveReload {
		r.Get(LiveReloadPath, s.hub.ServeWS)
		files = injectLiveReload(files)
	}
	r.Handle("/*", files)

	return r
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			logfields.Path(r.URL.Path),
			slog.Int("code", ww.Status()),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	})
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Start listens on the configured port and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Preview server listening", logfields.Addr("http://"+ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown closes live-reload connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}
