package store

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one turn's content within a chat.
type Message struct {
	// ID of this message.
	ID string
	// ChatID of the owning chat.
	ChatID string
	// Role is either "user" or "assistant".
	Role string
	// Content of the message.
	Content string
	// Time at which the message was created.
	CreationTimestamp int64
}
