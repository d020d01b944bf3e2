package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	apiMiddleware "github.com/phrazzld/directions-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	app.directionsHandler.Routes(r)

	// Health check endpoint
	r.Get("/health", app.directionsHandler.Health)

	if !app.config.Server.Compress {
		return r
	}
	return gzhttp.GzipHandler(r)
}
