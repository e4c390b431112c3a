// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the trace-backup client's terminal output: notices
// raised by the backup service, backup listings and the recent-status card.
package tui

import (
	"io"
	"sync"

	"github.com/MKhiriev/trace-backup/models"
)

const noticeNoNeedToAct = "no action needed · this does not affect your submission"

// TerminalNotifier prints notices as boxed overlays. It never waits for the
// user, so report submission is never blocked by a notice.
type TerminalNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

// Notify writes notice to the terminal. Write errors are ignored.
func (n *TerminalNotifier) Notify(notice models.Notice) {
	view := renderNotice(notice)

	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = io.WriteString(n.out, view+"\n")
}

func renderNotice(notice models.Notice) string {
	content := titleStyle.Render(notice.Title)
	if notice.Message != "" {
		content += "\n\n" + notice.Message
	}
	content += "\n\n" + helpStyle.Render(noticeNoNeedToAct)

	return noticeBoxStyle.Render(content)
}
