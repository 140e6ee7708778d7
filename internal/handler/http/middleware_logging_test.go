// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-plugin-config/internal/logger"
	"github.com/MKhiriev/go-plugin-config/internal/store"
	"github.com/MKhiriev/go-plugin-config/models"
)

// accessLog serves target through the full router and returns the decoded
// access log entry.
func accessLog(t *testing.T, target string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	h := NewHandler(store.NewWithData(testData()), nil, models.AppBuildInfo{}, logger.NewLoggerTo(&buf, "test"))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.Init().ServeHTTP(httptest.NewRecorder(), req)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if _, ok := entry["status"]; ok {
			return entry
		}
	}
	t.Fatal("no access log entry written")
	return nil
}

func TestWithLogging_Fields(t *testing.T) {
	entry := accessLog(t, "/api/config/cache")

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/api/config/cache", entry["uri"])
	assert.Equal(t, "/api/config/{namespace}", entry["route"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Greater(t, entry["size"], float64(0))
	assert.Contains(t, entry, "duration")
	assert.NotEmpty(t, entry["trace_id"])
}

// TestWithLogging_LevelByStatus verifies that client errors are logged at
// warn level.
func TestWithLogging_LevelByStatus(t *testing.T) {
	entry := accessLog(t, "/api/config/missing")

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
}

// TestWithLogging_ServerError verifies that 5xx answers are logged at error
// level.
func TestWithLogging_ServerError(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.NewLoggerTo(&buf, "test")}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "", entry["route"])
}
