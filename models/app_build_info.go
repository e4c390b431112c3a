// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo carries immutable build-time metadata injected by linker
// flags and printed by the client on start.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as
// "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// String renders the build info the way the client prints it on start.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		a.buildVersion, a.buildDate, a.buildCommit)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
