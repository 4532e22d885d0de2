package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes registers the public site routes and the metrics endpoint
func setupRoutes(r chi.Router, handlers *routeHandlers, metricsEnabled bool) {
	r.Get("/", handlers.healthHandler.root())
	r.Get("/test", handlers.healthHandler.health())
	r.Get("/health", handlers.healthHandler.health())

	r.Post("/api/inquiries", handlers.inquiryHandler.createInquiry())
	r.Get("/api/inquiries", handlers.inquiryHandler.listInquiries())

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
}
