// Package tui provides the Bubble Tea host for Cupid Arrow, both for local
// play and for sessions served over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cupid-arrow/internal/scheduler"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(scheduler.Interval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
