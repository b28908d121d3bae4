package conversation

import (
	"strings"

	"localchat/internal/debug"
	"localchat/store"
)

const maxTitleLength = 50

// maybeAutoTitle derives a title from the first user message once the
// first assistant reply lands, and only while the chat still carries
// the default title. Title failures never fail the turn.
func (c *Controller) maybeAutoTitle() {
	chat := c.session.Chat()
	if chat == nil || chat.Title != store.DefaultTitle {
		return
	}
	var first string
	for _, message := range c.session.Messages() {
		if message.Role == store.RoleUser {
			first = message.Content
			break
		}
	}
	title := deriveTitle(first)
	if title == "" {
		return
	}
	if err := c.session.UpdateTitle(title); err != nil {
		debug.GetLogger().Debug("updating chat title", "error", err)
	}
}

// deriveTitle collapses the message onto one line and truncates it to
// a display-friendly length, counting runes so multibyte text is never
// split mid-character.
func deriveTitle(message string) string {
	title := strings.Join(strings.Fields(message), " ")
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		title = strings.TrimSpace(string(runes[:maxTitleLength-3])) + "..."
	}
	return title
}
