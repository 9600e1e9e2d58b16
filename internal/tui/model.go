// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

const (
	maxLogLines     = 500
	defaultBarWidth = 40
	reservedLines   = 8 // title, activity, bar, blank lines and help
)

// Styles contains all the styling for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Activity lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Failed   lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Activity: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
	}
}

// severityStyle returns the style of a log line.
func severityStyle(s progress.Severity) lipgloss.Style {
	colour := "15"

	switch s {
	case progress.SeverityLoading:
		colour = "12"
	case progress.SeverityRunning:
		colour = "10"
	case progress.SeveritySaving:
		colour = "13"
	case progress.SeverityWarning:
		colour = "11"
	case progress.SeverityError:
		colour = "9"
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
}

// Model is the bubbletea model of a batch run.
type Model struct {
	title    string
	abort    func()
	cancel   func()
	autoQuit bool

	spinner  spinner.Model
	bar      bprogress.Model
	styles   *Styles
	width    int
	height   int
	log      []progress.Event
	activity string
	info     progress.Info
	summary  *progress.Summary
	aborting bool
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithAutoQuit makes the TUI exit as soon as the run finishes.
func WithAutoQuit() ModelOption {
	return func(m *Model) {
		m.autoQuit = true
	}
}

// NewModel creates a model. abort requests a cooperative stop and cancel
// stops the run outright; either may be nil.
func NewModel(title string, abort, cancel func(), opts ...ModelOption) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		title:   title,
		abort:   abort,
		cancel:  cancel,
		spinner: s,
		bar:     bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(defaultBarWidth)),
		styles:  NewStyles(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Finished reports whether the run has reached a terminal state.
func (m *Model) Finished() bool {
	return m.summary != nil
}

// Summary returns the final summary, or nil while the run is going.
func (m *Model) Summary() *progress.Summary {
	return m.summary
}

// Log returns the log events received so far, oldest first.
func (m *Model) Log() []progress.Event {
	return m.log
}

func (m *Model) appendLog(e progress.Event) {
	m.log = append(m.log, e)
	if over := len(m.log) - maxLogLines; over > 0 {
		m.log = append(m.log[:0], m.log[over:]...)
	}

	switch e.Severity {
	case progress.SeverityLoading, progress.SeverityRunning, progress.SeveritySaving:
		m.activity = e.Message
	}
}

// logHeight is the number of log lines that fit on screen.
func (m *Model) logHeight() int {
	if m.height <= reservedLines {
		return 1
	}

	return m.height - reservedLines
}
