package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"localchat/internal/engine"
)

// Messages exchanged with goroutines.
type (
	// engineProgressMsg carries fractional model load progress.
	engineProgressMsg struct{ progress float64 }

	// engineStateMsg reports a lifecycle transition.
	engineStateMsg struct {
		state engine.State
		err   error
	}

	// sessionUpdatedMsg signals that the live view changed and the
	// conversation should be re-rendered.
	sessionUpdatedMsg struct{}

	// turnDoneMsg reports the outcome of one full turn.
	turnDoneMsg struct{ err error }
)

// NotifySessionUpdated is handed to the conversation controller so
// view changes made off the update loop trigger a re-render.
func (m *Model) NotifySessionUpdated() {
	m.Send(sessionUpdatedMsg{})
}

// InitializeEngine loads the chat's model in the background, feeding
// progress and the final state into the update loop.
func (m *Model) InitializeEngine() {
	go func() {
		err := m.engine.Initialize(m.ctx, m.chatModel.ID, func(progress float64) {
			m.Send(engineProgressMsg{progress: progress})
		})
		state, _ := m.engine.State()
		m.Send(engineStateMsg{state: state, err: err})
	}()
}

func (m *Model) sendMessage() tea.Cmd {
	userInput := strings.TrimSpace(m.textarea.Value())
	if userInput == "" {
		return nil
	}

	m.history.Add(userInput)
	m.historyNavigating = false
	m.textarea.Reset()
	m.err = nil

	go func() {
		if err := m.controller.Send(m.ctx, userInput); err != nil {
			log.Error("turn failed", "error", err)
			m.Send(turnDoneMsg{err: err})
			return
		}
		m.Send(turnDoneMsg{})
	}()

	return m.spinner.Tick
}
