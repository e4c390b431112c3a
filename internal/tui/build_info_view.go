// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/trace-backup/models"
)

// RenderBuildInfo renders the "version" page.
func RenderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: trace-backup\n")
	b.WriteString("Version: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(info.BuildCommit())

	return renderPage("ABOUT", b.String(), "")
}
