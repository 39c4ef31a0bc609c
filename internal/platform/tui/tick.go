// Package tui hosts games in a terminal with Bubble Tea, locally or per SSH
// session. It turns keys and clicks into core actions, drives the fixed-step
// tick, records finished runs and shows the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the game by one step.
type TickMsg time.Time

// tickInterval is the wall time between steps. Rates below 1 fall back to 60.
func tickInterval(rate int) time.Duration {
	if rate < 1 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next TickMsg.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
