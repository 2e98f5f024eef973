// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// AppBuildInfo is the version, date and commit stamped into the photosync
// binary with -ldflags. Unset values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

func (a AppBuildInfo) BuildVersion() string { return orNA(a.version) }
func (a AppBuildInfo) BuildDate() string    { return orNA(a.date) }
func (a AppBuildInfo) BuildCommit() string  { return orNA(a.commit) }

// String formats the build as "photosync <version> (<commit>, <date>)" for
// log lines.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("photosync %s (%s, %s)", a.BuildVersion(), a.BuildCommit(), a.BuildDate())
}

func orNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
