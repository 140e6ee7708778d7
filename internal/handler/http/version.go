// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-plugin-config/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.VersionResponse{
		Version: h.buildInfo.BuildVersion(),
		Date:    h.buildInfo.BuildDate(),
		Commit:  h.buildInfo.BuildCommit(),
	})
}
