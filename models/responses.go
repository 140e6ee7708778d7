// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the body of every non-2xx answer of the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
