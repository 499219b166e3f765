package httpserver

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moviegoers/ratings/internal/config"
	"github.com/moviegoers/ratings/internal/repository"
	"github.com/moviegoers/ratings/internal/session"
	"github.com/moviegoers/ratings/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages that render inside the base layout.
var pageNames = []string{
	"home.html",
	"users.html",
	"user.html",
	"movies.html",
	"movie.html",
	"login.html",
	"register.html",
	"error.html",
}

// Server wires HTTP routing, middleware, templates, and handlers.
type Server struct {
	cfg       config.Config
	store     *store.Store
	repo      *repository.Repository
	sessions  *session.Manager
	logger    *log.Logger
	router    chi.Router
	templates map[string]*template.Template
	httpSrv   *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, sessions *session.Manager, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:       cfg,
		store:     st,
		repo:      repo,
		sessions:  sessions,
		logger:    logger,
		router:    r,
		templates: parseTemplates(),
	}
	s.registerRoutes()
	return s
}

func parseTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		templates[name] = template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+name))
	}
	return templates
}

func (s *Server) registerRoutes() {
	s.router.NotFound(s.renderNotFound)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/", s.handleHome)
	s.router.Get("/login", s.handleLoginForm)
	s.router.Post("/login", s.handleLogin)
	s.router.Get("/logout", s.handleLogout)
	s.router.Get("/register", s.handleRegisterForm)
	s.router.Post("/register", s.handleRegister)
	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Get("/{userID}", s.handleShowUser)
	})
	s.router.Route("/movies", func(r chi.Router) {
		r.Get("/", s.handleListMovies)
		r.Route("/{movieID}", func(r chi.Router) {
			r.Get("/", s.handleShowMovie)
			r.Post("/", s.handleSubmitRating)
		})
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// render executes a page template into a buffer first so a failed render
// still produces a clean error response instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, page string, data interface{}) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.logger.Printf("render: unknown template %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.Printf("render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, status, "error.html", errorPage{
		basePage: s.basePage(w, r, fmt.Sprintf("%d", status)),
		Status:   status,
		Message:  message,
	})
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "The page you were looking for does not exist.")
}

func (s *Server) renderInternalError(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
