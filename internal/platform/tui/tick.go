// Package tui provides the Bubble Tea integration for the pairs game.
// It handles the terminal UI loop, input mapping, the one-second play
// clock, and deferred flip resolution.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/pairs"
)

// ClockMsg advances the one-second play clock.
type ClockMsg time.Time

// clockCmd returns a Bubble Tea command that sends a clock message after
// one second. The engine ignores ticks while paused or won, so the clock
// runs unconditionally.
func clockCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

// ResolveMsg commits a pending pair once its presentation delay expires.
// The resolution carries the deal generation it was scheduled for; the
// engine discards it when a restart raced the timer.
type ResolveMsg struct {
	Resolution pairs.Resolution
}

// resolveCmd schedules the deferred commit of a completed pair.
func resolveCmd(res pairs.Resolution, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ResolveMsg{Resolution: res}
	})
}
