package store

// Chat represents a titled conversation bound to one model configuration.
// The model binding is fixed at creation; switching models means creating
// a new chat.
type Chat struct {
	// ID of this chat.
	ID string
	// Title displayed in the chat list. Defaults to "New Chat".
	Title string
	// ModelID of the engine configuration producing this chat's replies.
	ModelID string
	// Time at which the chat was created.
	CreationTimestamp int64
	// Time at which the chat was last updated. Never decreases.
	UpdateTimestamp int64
}

// DefaultTitle given to newly created chats.
const DefaultTitle = "New Chat"
