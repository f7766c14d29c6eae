package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/productgen/internal/api"
	apiMiddleware "github.com/phrazzld/productgen/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	productHandler, err := api.NewProductHandler(app.generator, app.categories, app.logger)
	if err != nil {
		return nil, err
	}
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))

	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.registry))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.promRegistry, promhttp.HandlerOpts{}))

	r.Route("/admin/products", func(r chi.Router) {
		r.Use(authMiddleware.RequireAdmin)
		r.Post("/generate-from-image", productHandler.GenerateFromImage)
		r.Post("/generate-from-title", productHandler.GenerateFromTitle)
		r.Post("/generate", productHandler.GenerateContent)
	})

	return r, nil
}
