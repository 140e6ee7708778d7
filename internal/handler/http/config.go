// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/models"
)

// getConfig answers with the whole merged tree, or with its flattened form
// when ?flat=true is given.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("flat") == "true" {
		writeJSON(w, r, http.StatusOK, h.store.Flatten())
		return
	}

	writeJSON(w, r, http.StatusOK, h.store.Snapshot())
}

// getNamespace answers with the value under a dot-delimited namespace.
func (h *Handler) getNamespace(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")

	value, ok := h.store.Fetch(namespace)
	if !ok {
		writeError(w, r, http.StatusNotFound, ErrNamespaceNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, models.ConfigEntry{Namespace: namespace, Value: value})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error encoding response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, models.ErrorResponse{Error: err.Error()})
}
