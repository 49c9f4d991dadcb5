// Package server exposes the learning services as a JSON API over echo.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/terve/internal/config"
	"github.com/example/terve/internal/database"
	"github.com/example/terve/internal/drills"
	"github.com/example/terve/internal/exam"
	"github.com/example/terve/internal/reading"
	"github.com/example/terve/internal/spaced_repetition"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// Services are the collaborators behind the handlers
type Services struct {
	Users      *database.UserRepository
	Flashcards *spaced_repetition.Service
	Drills     *drills.Service
	Reading    *reading.Service
	Exams      *exam.Service
}

// Server is the HTTP adapter of the application
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	services  Services
	store     sessions.Store
	providers map[string]*Provider
	limiter   *RateLimiter
	now       func() time.Time
}

// Option customizes a Server
type Option func(*Server)

// WithProviders replaces the OAuth providers built from the configuration
func WithProviders(providers ...*Provider) Option {
	return func(s *Server) {
		s.providers = make(map[string]*Provider, len(providers))
		for _, p := range providers {
			s.providers[p.Name] = p
		}
	}
}

// WithClock replaces the wall clock used for exam sessions
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the server and registers every route
func New(cfg *config.Config, services Services, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		config:    cfg,
		services:  services,
		store:     newCookieStore(cfg),
		providers: providersFromConfig(cfg),
		limiter:   NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(s.limiter.Middleware())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/api/health", s.health)

	auth := s.echo.Group("/auth")
	auth.GET("/login", s.showLogin)
	auth.GET("/logout", s.logout)
	auth.GET("/:provider/redirect", s.oauthRedirect)
	auth.GET("/:provider/callback", s.oauthCallback)

	protected := s.echo.Group("", s.requireUser)

	flashcards := protected.Group("/flashcards")
	flashcards.GET("", s.flashcardStats)
	flashcards.GET("/practice", s.flashcardPractice)
	flashcards.POST("/answer", s.flashcardAnswer)
	flashcards.POST("/move", s.flashcardMove)
	flashcards.POST("/add", s.flashcardAdd)

	verbs := protected.Group("/verbs")
	verbs.GET("/practice", s.verbPractice)
	verbs.POST("/check", s.verbCheck)

	nouns := protected.Group("/nouns")
	nouns.GET("/practice", s.nounPractice)
	nouns.POST("/check", s.nounCheck)
	nouns.GET("/cases", s.nounCases)

	readingGroup := protected.Group("/reading")
	readingGroup.POST("/generate", s.readingGenerate)
	readingGroup.GET("/comprehension/:storyId", s.readingComprehension)
	readingGroup.POST("/comprehension/check", s.readingCheck)
	readingGroup.POST("/add-flashcard", s.flashcardAdd)

	exams := protected.Group("/exams")
	exams.GET("", s.examIndex)
	exams.GET("/start", s.examStart)
	exams.POST("/begin", s.examBegin)
	exams.POST("/submit", s.examSubmit)
	exams.GET("/result/:id", s.examResult)
	exams.GET("/history", s.examHistory)
	exams.GET("/stats", s.examStats)

	api := protected.Group("/api")
	api.GET("/me", s.getProfile)
	api.PUT("/me", s.updateProfile)
	api.POST("/me/telegram", s.telegramLink)
}

// SweepIdle drops the rate limits of clients that went quiet
func (s *Server) SweepIdle() int {
	return s.limiter.Sweep(RateLimitIdle)
}

// ServeHTTP lets the server be mounted in tests and other muxes
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	slog.Info("server listening", slog.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server stopped")
	}
	return nil
}

// Shutdown stops accepting requests and waits for running ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

// requestLogger writes one slog record per request
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
