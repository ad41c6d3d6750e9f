/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/simulations      Run simulations
  /api/centres/*        Centre catalogue and import
  /api/reference/*      Flow, direction and segment codes
  /api/scenarios/*      Demo scenarios
  /metrics              Prometheus metrics

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tawazoon/staffing-engine/metrics"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Simulation routes
		r.Post("/simulations", h.RunSimulation)

		// Centre routes
		r.Route("/centres", func(r chi.Router) {
			r.Get("/", h.ListCentres)
			r.Post("/", h.ImportCentre)
			r.Get("/{id}", h.GetCentre)
			r.Get("/{id}/stations", h.ListStations)
			r.Get("/{id}/tasks", h.ListTasks)
		})

		// Reference data routes
		r.Route("/reference", func(r chi.Router) {
			r.Get("/flows", h.ListFlows)
			r.Get("/directions", h.ListDirections)
			r.Get("/segments", h.ListSegments)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Prometheus metrics from the engine's private registry.
	r.Get("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Staffing Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Staffing Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/centres">/api/centres</a> - List centres</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
<li><a href="/api/reference/flows">/api/reference/flows</a> - Flow codes</li>
<li><a href="/metrics">/metrics</a> - Prometheus metrics</li>
<li>POST /api/simulations - Run a workforce-sizing simulation</li>
</ul>
</body>
</html>`))
	})

	return r
}
