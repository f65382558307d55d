package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmeshcher/shops-admin/internal/middleware"
	"github.com/mmeshcher/shops-admin/internal/render"
)

func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(h.metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", render.Header, middleware.MethodOverrideHeader},
		AllowCredentials: true,
	}))
	r.Use(chimiddleware.Compress(5, "application/json", "text/html"))
	r.Use(middleware.GzipRequest)
	r.Use(middleware.MethodOverride)

	r.Get("/ping", h.PingHandler)
	r.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	r.Route("/shops", func(r chi.Router) {
		r.Use(h.auth.Handler)

		r.Get("/", h.IndexHandler)
		r.Post("/", h.StoreHandler)
		r.Get("/create", h.CreateHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.ShowHandler)
			r.Put("/", h.UpdateHandler)
			r.Delete("/", h.DestroyHandler)
			r.Get("/edit", h.EditHandler)
			r.Get("/visit", h.VisitHandler)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}
