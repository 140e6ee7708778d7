// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/snapshot"
	"github.com/MKhiriev/go-plugin-config/models"
)

// getSnapshot answers with the configuration saved under the session id.
func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	data, err := h.snapshots.Load(r.Context(), sessionID)
	switch {
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
		writeError(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSnapshot").Msg("error loading snapshot")
		writeError(w, r, http.StatusInternalServerError, ErrInternal)
		return
	}

	writeJSON(w, r, http.StatusOK, models.Snapshot{SessionID: sessionID, Data: data})
}
