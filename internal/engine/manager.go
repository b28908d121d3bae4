package engine

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// State of the engine lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

// StatusText returns the fixed display string for a state.
func (s State) StatusText() string {
	switch s {
	case StateInitializing:
		return "Initializing model..."
	case StateReady:
		return "Model ready!"
	case StateFailed:
		return "Failed to load model"
	default:
		return ""
	}
}

// ErrNotReady is returned by Generate while the engine is not ready.
// Generation requests are rejected, never queued.
var ErrNotReady = errors.New("engine is not ready")

// Manager owns the runtime and its lifecycle. It is stateless across
// Generate calls beyond holding the single runtime; callers serialize
// generation per chat.
type Manager struct {
	runtime Runtime

	mu         sync.Mutex
	state      State
	modelID    string
	initErr    error
	initSeq    int
	cancelInit context.CancelFunc
}

// NewManager creates a manager around the given runtime.
func NewManager(runtime Runtime) *Manager {
	return &Manager{runtime: runtime}
}

// Initialize loads the named model, forwarding fractional progress to
// onProgress until the model is ready or loading fails. Calling it
// again tears down any in-flight initialization and re-enters the
// initializing state for the new model id.
func (m *Manager) Initialize(ctx context.Context, modelID string, onProgress func(float64)) error {
	m.mu.Lock()
	if m.cancelInit != nil {
		m.cancelInit()
	}
	ctx, cancel := context.WithCancel(ctx)
	m.cancelInit = cancel
	m.state = StateInitializing
	m.modelID = modelID
	m.initErr = nil
	m.initSeq++
	seq := m.initSeq
	m.mu.Unlock()

	err := m.runtime.Load(ctx, modelID, onProgress)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initSeq != seq {
		// Superseded by a newer Initialize; its outcome wins.
		return err
	}
	if err != nil {
		m.state = StateFailed
		m.initErr = err
		return errors.Wrapf(err, "loading model %s", modelID)
	}
	m.state = StateReady
	return nil
}

// Generate submits the full message history and sampling parameters to
// the runtime and returns its delta stream. Rejected unless Ready.
func (m *Manager) Generate(ctx context.Context, history []*Message, options Options) (Stream, error) {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		return nil, ErrNotReady
	}
	modelID := m.modelID
	m.mu.Unlock()

	return m.runtime.Complete(ctx, &CompletionRequest{
		Model:       modelID,
		Messages:    history,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	})
}

// State returns the lifecycle state and, for StateFailed, the
// underlying initialization error for logging.
func (m *Manager) State() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.initErr
}

// ModelID returns the model the manager was last initialized with.
func (m *Manager) ModelID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modelID
}
