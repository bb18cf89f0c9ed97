package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time
type frameMsg string
type presetMsg string

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/pointerFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// frameFeed hands rendered frames from the engine to the UI loop. It keeps
// only the newest frame, so a slow UI skips frames instead of blocking the
// engine.
type frameFeed struct {
	ch chan string
}

func newFrameFeed() *frameFeed {
	return &frameFeed{ch: make(chan string, 1)}
}

func (f *frameFeed) push(frame string) {
	for {
		select {
		case f.ch <- frame:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

func (f *frameFeed) wait() tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-f.ch)
	}
}

// waitPreset reads the next preset label. A nil channel yields no command.
func waitPreset(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return presetMsg(<-ch)
	}
}
