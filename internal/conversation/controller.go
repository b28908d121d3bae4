// Package conversation orchestrates one chat turn end to end: persist
// the user's message, stream the reply through the live view, and
// persist the final assistant message.
package conversation

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"localchat/internal/engine"
	"localchat/internal/session"
	"localchat/store"
)

// ErrTurnInFlight is returned by Send while a previous turn is still
// streaming. Turns are rejected, never queued.
var ErrTurnInFlight = errors.New("a response is already being generated")

// Generator is the slice of the engine a turn needs.
type Generator interface {
	Generate(ctx context.Context, history []*engine.Message, options engine.Options) (engine.Stream, error)
}

// Controller runs turns against a session. Notify is invoked after
// every observable state change so a UI can re-render; it may be nil.
type Controller struct {
	session *session.Session
	engine  Generator
	options engine.Options
	notify  func()

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewController wires a controller over the session and engine.
func NewController(s *session.Session, g Generator, options engine.Options, notify func()) *Controller {
	if notify == nil {
		notify = func() {}
	}
	return &Controller{session: s, engine: g, options: options, notify: notify}
}

// Send runs one full turn: the user text is persisted immediately, the
// reply streams into the session's pending tail, and on completion the
// full reply is persisted. A canceled turn persists whatever partial
// text had streamed. Generation failures persist a user-facing error
// text as the assistant message so the history reflects what was shown.
func (c *Controller) Send(ctx context.Context, text string) error {
	if c.session.Loading() {
		return ErrTurnInFlight
	}

	if _, err := c.session.AddMessage(store.RoleUser, text); err != nil {
		return errors.Wrap(err, "persisting user message")
	}
	c.session.SetLoading(true)
	defer func() {
		c.session.SetLoading(false)
		c.notify()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	c.notify()

	stream, err := c.engine.Generate(ctx, c.history(), c.options)
	if err != nil {
		return c.failTurn(err)
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return c.persistPartial(reply.String())
			}
			return c.failTurn(err)
		}
		reply.WriteString(delta.Text)
		c.session.UpdateMessageStream(reply.String())
		c.notify()
	}

	if _, err := c.session.AddMessage(store.RoleAssistant, reply.String()); err != nil {
		return errors.Wrap(err, "persisting assistant message")
	}
	c.maybeAutoTitle()
	return nil
}

// Stop cancels the in-flight turn, if any. The partial reply is
// persisted by the Send goroutine, not here.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// history maps the persisted messages into the engine's shape. The
// pending tail is excluded; it is display state, not context.
func (c *Controller) history() []*engine.Message {
	messages := c.session.Messages()
	history := make([]*engine.Message, 0, len(messages))
	for _, message := range messages {
		history = append(history, &engine.Message{Role: message.Role, Content: message.Content})
	}
	return history
}

// persistPartial finishes a stopped turn. Partial text becomes a
// durable assistant message; an empty partial just clears the view.
func (c *Controller) persistPartial(partial string) error {
	if partial == "" {
		return nil
	}
	if _, err := c.session.AddMessage(store.RoleAssistant, partial); err != nil {
		return errors.Wrap(err, "persisting partial reply")
	}
	c.maybeAutoTitle()
	return nil
}

// failTurn records the user-facing error text as the assistant message
// and surfaces the underlying error for logging.
func (c *Controller) failTurn(err error) error {
	if _, addErr := c.session.AddMessage(store.RoleAssistant, engine.UserFacingText(err)); addErr != nil {
		return errors.Wrap(addErr, "persisting error message")
	}
	return errors.Wrap(err, "generating response")
}
