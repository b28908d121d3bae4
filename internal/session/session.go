// Package session holds the live view of one chat: the persisted
// message history plus, while a reply is streaming, a single pending
// message that is not yet durable.
package session

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"localchat/store"
)

// Pending is a reply still streaming from the engine. It carries no id
// because it has never been written to the store.
type Pending struct {
	Role    string
	Content string
}

// Entry is either a persisted message or the pending tail, never both.
// The split replaces the "last message has an empty id" shape heuristic
// with an explicit tag.
type Entry struct {
	Message *store.Message
	Pending *Pending
}

// Session is the chat-scoped view. The persisted prefix always matches
// durable order; the pending tail, when present, is structurally the
// last element. Methods are safe for use from the UI loop and the
// generation goroutine.
type Session struct {
	store *store.Store

	mu       sync.Mutex
	chat     *store.Chat
	messages []*store.Message
	pending  *Pending
	loading  bool
}

// New session over the given store. Call Load before anything else.
func New(s *store.Store) *Session {
	return &Session{store: s}
}

// Load fetches the chat and its messages concurrently. On failure the
// prior state is left untouched beyond clearing the loading flag, and
// the error is returned for logging.
func (s *Session) Load(chatID string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var chat *store.Chat
	var messages []*store.Message
	group := errgroup.Group{}
	group.Go(func() error {
		var err error
		chat, err = s.store.GetChat(chatID)
		return errors.Wrap(err, "fetching chat")
	})
	group.Go(func() error {
		var err error
		messages, err = s.store.GetChatMessages(chatID)
		return errors.Wrap(err, "fetching messages")
	})
	err := group.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.chat = chat
	s.messages = messages
	s.pending = nil
	return nil
}

// UpdateMessageStream replaces the pending tail's content with the
// complete text-so-far, creating the tail on the first call of a
// generation. No store I/O; callable once per streamed chunk.
func (s *Session) UpdateMessageStream(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Content = content
		return
	}
	s.pending = &Pending{Role: store.RoleAssistant, Content: content}
}

// AddMessage persists a message and reconciles the in-memory sequence:
// the pending tail, if any, is replaced by the durable record.
func (s *Session) AddMessage(role, content string) (*store.Message, error) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()
	if chat == nil {
		return nil, errors.New("no chat loaded")
	}

	message, err := s.store.AddMessage(chat.ID, role, content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.messages = append(s.messages, message)
	if message.CreationTimestamp > s.chat.UpdateTimestamp {
		s.chat.UpdateTimestamp = message.CreationTimestamp
	}
	return message, nil
}

// UpdateTitle persists the new title and updates the in-memory chat.
func (s *Session) UpdateTitle(title string) error {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()
	if chat == nil {
		return errors.New("no chat loaded")
	}

	if err := s.store.UpdateChatTitle(chat.ID, title); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat.Title = title
	return nil
}

// Chat returns the loaded chat, or nil before Load succeeds.
func (s *Session) Chat() *store.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat
}

// Entries returns the persisted prefix plus the pending tail.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.messages)+1)
	for _, message := range s.messages {
		entries = append(entries, Entry{Message: message})
	}
	if s.pending != nil {
		pending := *s.pending
		entries = append(entries, Entry{Pending: &pending})
	}
	return entries
}

// Messages returns a copy of the persisted prefix.
func (s *Session) Messages() []*store.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]*store.Message, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// SetLoading marks whether a turn is in flight.
func (s *Session) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports whether a turn is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
