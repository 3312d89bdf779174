package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps request bodies; configurations are small.
const maxBodyBytes = 1 << 20

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.RequestSize(maxBodyBytes))

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleOpenSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", s.handleCloseSession)
				r.Get("/configuration", s.handleGetConfiguration)

				r.Get("/settings", s.handleGetSettings)
				r.Put("/settings", s.handlePutSettings)

				r.Get("/records/{kind}", s.handleGetRecords)
				r.Put("/records/{kind}", s.handlePutRecords)

				r.Route("/configs", func(r chi.Router) {
					r.Get("/", s.handleListConfigs)
					r.Post("/", s.handleSaveConfig)
					r.Post("/{name}/load", s.handleLoadConfig)
					r.Delete("/{name}", s.handleDeleteConfig)
				})

				r.Post("/locate", s.handleLocate)
				r.Post("/simulate", s.handleSimulate)
			})
		})
	})

	return r
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
