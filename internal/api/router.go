// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chesthound/chesthound/internal/config"
)

// Router assembles the HTTP route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler and API configuration.
func NewRouter(handler *Handler, apiCfg *config.APIConfig) *Router {
	return &Router{
		handler: handler,
		chiMiddleware: NewChiMiddleware(&ChiMiddlewareConfig{
			CORSAllowedOrigins:   apiCfg.CORSOrigins,
			CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			CORSAllowedHeaders:   []string{"Content-Type"},
			CORSAllowCredentials: false,
			CORSMaxAge:           86400,

			RateLimitRequests: apiCfg.RateLimitRequests,
			RateLimitWindow:   apiCfg.RateLimitWindow,
			RateLimitDisabled: apiCfg.RateLimitDisabled,
		}),
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(PrometheusMetrics)

		// Health probes are exempt from rate limiting so monitoring stays cheap
		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Route("/worlds", func(r chi.Router) {
				r.Post("/upload", router.handler.UploadWorld)
				r.Get("/", router.handler.ListWorlds)
				r.Get("/{id}", router.handler.GetWorld)
				r.Get("/{id}/chests", router.handler.ListChests)
				r.Get("/{id}/items/summary", router.handler.ItemSummary)
			})

			r.Route("/chests", func(r chi.Router) {
				r.Get("/{id}", router.handler.GetChest)
				r.Get("/{id}/items", router.handler.ListChestItems)
			})

			r.Get("/items/{id}", router.handler.GetItem)
		})
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
