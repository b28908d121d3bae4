// Package tui is the Bubble Tea chat surface. It owns the terminal for
// the life of one chat: it renders the message history, runs the model
// load progress line, and drives turns through the conversation
// controller.
package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"localchat/internal/conversation"
	"localchat/internal/debug"
	"localchat/internal/engine"
	"localchat/internal/history"
	"localchat/internal/markdown"
	"localchat/internal/session"
	"localchat/model"
)

var log = debug.GetLogger()

// Model represents the Bubble Tea model for the chat screen.
type Model struct {
	// Core dependencies
	ctx        context.Context
	view       *session.Session
	controller *conversation.Controller
	engine     *engine.Manager
	chatModel  *model.Model

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	// UI state
	width        int
	height       int
	ready        bool
	quitting     bool
	err          error
	engineState  engine.State
	loadProgress float64

	// Input history
	history           *history.History
	historyNavigating bool

	// Program reference for sending messages from goroutines
	program   *tea.Program
	programMu sync.Mutex
}

// New creates a new chat screen model. The controller is wired in by
// the caller after construction so its notify callback can reach the
// running program.
func New(ctx context.Context, view *session.Session, eng *engine.Manager, chatModel *model.Model) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Ctrl+J to send, Alt+P/N for history, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(defaultTextareaWidth)
	ta.SetHeight(minTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	renderer, err := markdown.NewRenderer(defaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	return &Model{
		ctx:         ctx,
		view:        view,
		engine:      eng,
		chatModel:   chatModel,
		textarea:    ta,
		spinner:     sp,
		renderer:    renderer,
		history:     history.NewHistory(),
		engineState: engine.StateUninitialized,
	}, nil
}

// SetController wires the turn controller.
func (m *Model) SetController(controller *conversation.Controller) {
	m.controller = controller
}

// SetProgram sets the tea.Program reference for async message sending.
func (m *Model) SetProgram(p *tea.Program) {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	m.program = p
}

// getProgram safely gets the program reference.
func (m *Model) getProgram() *tea.Program {
	m.programMu.Lock()
	defer m.programMu.Unlock()
	return m.program
}

// Send forwards a message into the program's update loop. Safe to call
// from any goroutine once SetProgram has run.
func (m *Model) Send(msg tea.Msg) {
	if p := m.getProgram(); p != nil {
		p.Send(msg)
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// streaming reports whether a turn is in flight.
func (m *Model) streaming() bool {
	return m.view.Loading()
}
