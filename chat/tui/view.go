package tui

import (
	"fmt"
	"strings"

	"localchat/internal/engine"
	"localchat/store"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	b.WriteString(viewportStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	switch {
	case m.engineState != engine.StateReady:
		b.WriteString(m.renderEngineStatus())
		b.WriteString("\n")
	case m.streaming():
		b.WriteString(fmt.Sprintf("%s Generating... (Ctrl+C to stop)\n", m.spinner.View()))
	default:
		b.WriteString(textAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return b.String()
}

func (m *Model) renderTitle() string {
	chat := m.view.Chat()
	title := fmt.Sprintf(" 🤖 %s │ 💬 %s │ %s ", m.chatModel.Name, chat.ID[:8], chat.Title)
	return titleStyle.Width(m.width).Render(title)
}

// renderEngineStatus is the line shown instead of the input while the
// model is not servable.
func (m *Model) renderEngineStatus() string {
	switch m.engineState {
	case engine.StateFailed:
		return errorStyle.Render(engine.StateFailed.StatusText())
	case engine.StateReady:
		return readyStyle.Render(engine.StateReady.StatusText())
	default:
		status := engine.StateInitializing.StatusText()
		if m.loadProgress > 0 {
			status = fmt.Sprintf("%s %d%%", status, int(m.loadProgress*100))
		}
		return statusStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), status))
	}
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	entries := m.view.Entries()
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}

		if entry.Pending != nil {
			rendered := m.renderer.ToMarkdown(entry.Pending.Content)
			b.WriteString(aiMessageStyle.Render(rendered))
			b.WriteString(spinnerStyle.Render("▋"))
			continue
		}

		message := entry.Message
		switch message.Role {
		case store.RoleUser:
			rendered := m.renderer.ToMarkdown(message.Content)
			b.WriteString(userMessageStyle.Render(rendered))
		case store.RoleAssistant:
			rendered := m.renderer.ToMarkdown(message.Content)
			b.WriteString(aiMessageStyle.Render(rendered))
		}
	}

	if len(entries) == 0 {
		b.WriteString(dimTextStyle.Render("No messages yet. Say hello!"))
	}

	return b.String()
}
