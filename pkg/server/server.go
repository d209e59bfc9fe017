// Package server exposes the picture filters over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/inhies/go-bytesize"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const DefaultMaxUpload = 5 * bytesize.MB

type Option func(s *Server)

func WithMaxUpload(size bytesize.ByteSize) Option {
	return func(s *Server) {
		s.maxUpload = size
	}
}

// WithOrigins replaces the origins allowed to call from a browser.
func WithOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithMode sets the filter used when a request names none.
func WithMode(name string) Option {
	return func(s *Server) {
		s.mode = name
	}
}

func New(logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		log:       logger,
		maxUpload: DefaultMaxUpload,
		origins:   []string{"http://localhost:5173"},
		mode:      "coloring",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Server struct {
	log       *zap.Logger
	maxUpload bytesize.ByteSize
	origins   []string
	mode      string
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", s.health)
	r.Post("/convert", s.convert)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Stringer("written", bytesize.New(float64(ww.BytesWritten()))),
			zap.Duration("took", time.Since(start)),
		).Debug("http-request")
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
