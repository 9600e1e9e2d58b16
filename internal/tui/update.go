// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/maxbatch/internal/ctxlog"
	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

const (
	durationRounding = 100 * time.Millisecond
	percentScale     = 100
)

// EventMsg carries a log event into the program.
type EventMsg struct {
	Event progress.Event
}

// ProgressMsg carries a progress update into the program.
type ProgressMsg struct {
	Info progress.Info
}

// FinishedMsg carries the final summary into the program.
type FinishedMsg struct {
	Summary progress.Summary
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(msg.Width-4, 10), defaultBarWidth*2)

		return m, nil

	case EventMsg:
		m.appendLog(msg.Event)
		return m, nil

	case ProgressMsg:
		m.info = msg.Info
		return m, nil

	case FinishedMsg:
		m.summary = &msg.Summary
		m.activity = ""

		if m.autoQuit {
			m.quitting = true
			return m, tea.Quit
		}

		return m, nil

	default:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		if m.Finished() {
			m.quitting = true
			return m, tea.Quit
		}

	case "a", "esc":
		m.requestAbort()

	case "ctrl+c":
		if m.Finished() || m.aborting {
			m.quitting = true

			if !m.Finished() && m.cancel != nil {
				m.cancel()
			}

			return m, tea.Quit
		}

		m.requestAbort()
	}

	return m, nil
}

func (m *Model) requestAbort() {
	if m.Finished() || m.aborting {
		return
	}

	m.aborting = true

	if m.abort != nil {
		m.abort()
	}

	m.appendLog(progress.Event{
		Timestamp: time.Now(),
		Severity:  progress.SeverityWarning,
		Message:   "Abort requested. The process will stop after the current operation.",
	})
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")

	switch {
	case m.Finished():
		b.WriteString(m.summaryLine())
	case m.activity != "":
		b.WriteString(m.spinner.View() + " " + m.styles.Activity.Render(m.activity))
	default:
		b.WriteString(m.spinner.View() + " Starting...")
	}

	b.WriteString("\n")

	percent := m.info.Percent
	if m.Finished() {
		percent = m.summary.Percent
	}

	b.WriteString(m.bar.ViewAs(percent / percentScale))
	b.WriteString("\n")

	if m.info.CurrentStep > 0 {
		b.WriteString(m.styles.Status.Render(fmt.Sprintf("Step %d/%d: %s", m.info.CurrentStep, m.info.TotalSteps, m.info)))
	}

	b.WriteString("\n\n")

	start := max(len(m.log)-m.logHeight(), 0)
	for _, e := range m.log[start:] {
		line := e.Timestamp.Format(ctxlog.TimeFormat) + " " + e.Message
		b.WriteString(severityStyle(e.Severity).Render(line))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.helpText()))

	return b.String()
}

func (m *Model) summaryLine() string {
	s := m.summary
	text := fmt.Sprintf("Run %s: %d/%d steps, %d error(s) in %s",
		s.State, s.CurrentStep, s.TotalSteps, s.Errors, s.Duration.Round(durationRounding))

	switch s.State {
	case progress.StateCompleted:
		return m.styles.Success.Render("✓ " + text)
	case progress.StateAborted:
		return m.styles.Warning.Render("~ " + text)
	default:
		return m.styles.Failed.Render("✗ " + text)
	}
}

func (m *Model) helpText() string {
	switch {
	case m.Finished():
		return "q: quit"
	case m.aborting:
		return "stopping after the current operation... ctrl+c: cancel now"
	default:
		return "a/esc: abort after the current operation • ctrl+c twice: cancel now"
	}
}
