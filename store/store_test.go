package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "chats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateChat(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("Llama-3.2-1B-Instruct-q4f32_1-MLC")
	require.NoError(t, err)
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, DefaultTitle, chat.Title)
	assert.Equal(t, "Llama-3.2-1B-Instruct-q4f32_1-MLC", chat.ModelID)
	assert.Equal(t, chat.CreationTimestamp, chat.UpdateTimestamp)

	got, err := s.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, chat, got)
}

func TestGetChat_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetChat("nope")
	require.Error(t, err)
}

func TestUpdateChatTitle(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	require.NoError(t, s.UpdateChatTitle(chat.ID, "Renamed"))

	got, err := s.GetChat(chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.GreaterOrEqual(t, got.UpdateTimestamp, chat.UpdateTimestamp)
}

func TestUpdateChatTitle_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateChatTitle("nope", "Renamed")
	require.Error(t, err)
}

func TestAddMessage_OrderedRetrieval(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("M1")
	require.NoError(t, err)

	_, err = s.AddMessage(chat.ID, RoleUser, "Hi")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, RoleAssistant, "Hello")
	require.NoError(t, err)

	messages, err := s.GetChatMessages(chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "Hi", messages[0].Content)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, "Hello", messages[1].Content)
}

func TestAddMessage_ManyPreserveInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	// Rapid inserts can land on identical microsecond timestamps; the
	// rowid tie-break must keep insertion order.
	contents := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, content := range contents {
		_, err := s.AddMessage(chat.ID, RoleUser, content)
		require.NoError(t, err)
	}

	messages, err := s.GetChatMessages(chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, len(contents))
	for i, message := range messages {
		assert.Equal(t, contents[i], message.Content)
	}
}

func TestAddMessage_BumpsChatUpdateTimestamp(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateChat("m1")
	require.NoError(t, err)
	second, err := s.CreateChat("m1")
	require.NoError(t, err)

	// Writing to the first chat must move it ahead of the second in
	// the most-recently-active ordering.
	time.Sleep(time.Millisecond)
	_, err = s.AddMessage(first.ID, RoleUser, "ping")
	require.NoError(t, err)

	chats, err := s.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, first.ID, chats[0].ID)
	assert.Equal(t, second.ID, chats[1].ID)
	assert.Greater(t, chats[0].UpdateTimestamp, first.UpdateTimestamp)
}

func TestAddMessage_ChatNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddMessage("nope", RoleUser, "hello")
	require.Error(t, err)
}

func TestDeleteChat(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("m1")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, RoleUser, "Hi")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, RoleAssistant, "Hello")
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(chat.ID))

	messages, err := s.GetChatMessages(chat.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	chats, err := s.ListChats()
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestDeleteChat_Idempotent(t *testing.T) {
	s := newTestStore(t)

	chat, err := s.CreateChat("m1")
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(chat.ID))
	// A retried delete of an already-removed chat must succeed.
	require.NoError(t, s.DeleteChat(chat.ID))
	require.NoError(t, s.DeleteChat("never-existed"))
}

func TestCreateChat_Concurrent(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	ids := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chat, err := s.CreateChat("m1")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = chat.ID
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, ids[0], ids[1])

	chats, err := s.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	// Most recently updated first.
	assert.GreaterOrEqual(t, chats[0].UpdateTimestamp, chats[1].UpdateTimestamp)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chats.db")
	s, err := New(path)
	require.NoError(t, err)

	chat, err := s.CreateChat("m1")
	require.NoError(t, err)
	_, err = s.AddMessage(chat.ID, RoleUser, "persist me")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	messages, err := reopened.GetChatMessages(chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "persist me", messages[0].Content)
}
