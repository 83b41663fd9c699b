// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds data types shared between the transport layer and the
// binaries.
package models

import "fmt"

const notAvailable = "N/A"

// BuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are typically injected by linker flags during CI/CD and served by the
// version endpoints for diagnostics and release traceability. Empty values are
// reported as "N/A".
type BuildInfo struct {
	version string
	date    string
	commit  string
}

// NewBuildInfo constructs [BuildInfo] from the provided build metadata.
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		version: version,
		date:    date,
		commit:  commit,
	}
}

// Version returns the semantic version string of the build.
func (b BuildInfo) Version() string {
	return orNotAvailable(b.version)
}

// Date returns the build timestamp string.
func (b BuildInfo) Date() string {
	return orNotAvailable(b.date)
}

// Commit returns the source-control commit hash used for the build.
func (b BuildInfo) Commit() string {
	return orNotAvailable(b.commit)
}

// String renders the banner printed by the binaries on startup.
func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", b.Version(), b.Date(), b.Commit())
}

// BuildInfoResponse is the JSON body of GET /api/build.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// Response converts b to its JSON representation.
func (b BuildInfo) Response() BuildInfoResponse {
	return BuildInfoResponse{Version: b.Version(), Date: b.Date(), Commit: b.Commit()}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
