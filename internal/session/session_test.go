package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localchat/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSession_Load(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, store.RoleUser, "Hi")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, store.RoleAssistant, "Hello")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))

	assert.False(t, session.Loading())
	assert.Equal(t, chat.ID, session.Chat().ID)

	entries := session.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Hi", entries[0].Message.Content)
	assert.Equal(t, "Hello", entries[1].Message.Content)
	assert.Nil(t, entries[1].Pending)
}

func TestSession_LoadUnknownChatKeepsState(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, store.RoleUser, "Hi")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))

	err = session.Load("no-such-chat")
	require.Error(t, err)

	// The previously loaded view survives a failed reload.
	assert.False(t, session.Loading())
	assert.Equal(t, chat.ID, session.Chat().ID)
	assert.Len(t, session.Entries(), 1)
}

func TestSession_UpdateMessageStream(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))
	_, err = session.AddMessage(store.RoleUser, "Hi")
	require.NoError(t, err)

	// Each call carries the full text so far, not an increment.
	session.UpdateMessageStream("Hel")
	session.UpdateMessageStream("Hello")

	entries := session.Entries()
	require.Len(t, entries, 2)
	require.NotNil(t, entries[1].Pending)
	assert.Equal(t, store.RoleAssistant, entries[1].Pending.Role)
	assert.Equal(t, "Hello", entries[1].Pending.Content)

	// The pending tail is view-only; nothing was persisted.
	messages, err := s.GetChatMessages(chat.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSession_AddMessageReplacesPendingTail(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))
	_, err = session.AddMessage(store.RoleUser, "Hi")
	require.NoError(t, err)

	session.UpdateMessageStream("Hel")
	session.UpdateMessageStream("Hello")
	_, err = session.AddMessage(store.RoleAssistant, "Hello")
	require.NoError(t, err)

	entries := session.Entries()
	require.Len(t, entries, 2)
	require.NotNil(t, entries[1].Message)
	assert.Equal(t, "Hello", entries[1].Message.Content)

	messages, err := s.GetChatMessages(chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[1].Content)
}

func TestSession_AddMessageBumpsChatTimestamp(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))
	before := session.Chat().UpdateTimestamp

	_, err = session.AddMessage(store.RoleUser, "Hi")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, session.Chat().UpdateTimestamp, before)

	stored, err := s.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.UpdateTimestamp, session.Chat().UpdateTimestamp)
}

func TestSession_AddMessageWithoutLoad(t *testing.T) {
	session := New(newTestStore(t))
	_, err := session.AddMessage(store.RoleUser, "Hi")
	require.Error(t, err)
}

func TestSession_UpdateTitle(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))
	require.NoError(t, session.UpdateTitle("Trip planning"))

	assert.Equal(t, "Trip planning", session.Chat().Title)
	stored, err := s.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning", stored.Title)
}

func TestSession_MessagesExcludePending(t *testing.T) {
	s := newTestStore(t)
	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	session := New(s)
	require.NoError(t, session.Load(chat.ID))
	_, err = session.AddMessage(store.RoleUser, "Hi")
	require.NoError(t, err)
	session.UpdateMessageStream("Hel")

	messages := session.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Hi", messages[0].Content)
}
