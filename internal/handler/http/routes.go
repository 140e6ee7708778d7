// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the read-only configuration API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Route("/api", func(r chi.Router) {
		r.Get("/config", h.getConfig)
		r.Get("/config/{namespace}", h.getNamespace)
		r.Get("/version", h.getServerVersion)
		if h.snapshots != nil {
			r.Get("/snapshots/{session}", h.getSnapshot)
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
