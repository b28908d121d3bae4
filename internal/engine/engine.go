package engine

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Message is one role/content pair of the generation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are the sampling parameters for one generation.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Delta is one incremental chunk of generated text.
type Delta struct {
	Text string
}

// Stream yields generated text incrementally. It is consumed exactly
// once and is not restartable; Recv returns io.EOF on normal completion
// and an *Error (or transport error) on mid-stream failure.
type Stream interface {
	Recv() (*Delta, error)
	Close()
}

// CompletionRequest is submitted to the runtime for one generation.
type CompletionRequest struct {
	Model       string     `json:"model"`
	Messages    []*Message `json:"messages"`
	Temperature float32    `json:"temperature"`
	MaxTokens   int        `json:"max_tokens"`
}

// Runtime is the black-box generation engine running in its own local
// process. Load blocks until the named model is resident, forwarding
// fractional progress in [0, 1]. Complete starts one streaming
// generation.
type Runtime interface {
	Load(ctx context.Context, modelID string, onProgress func(float64)) error
	Complete(ctx context.Context, request *CompletionRequest) (Stream, error)
}

// CodeInputTooLong is reported by the runtime when the submitted
// history exceeds the model's context window.
const CodeInputTooLong int64 = 11567960

// Fixed transcript texts recorded in place of a failed reply.
const (
	TextInputTooLong   = "Input too long. Please try a shorter message."
	TextGenerateFailed = "Error: Failed to generate response"
)

// Error is a structured failure reported by the runtime, carrying a
// numeric code, a human-readable message, or both.
type Error struct {
	Code    int64
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("engine error code %d", e.Code)
}

// UserFacingText maps a generation failure to the fixed text recorded
// into the transcript. Raw partial output is never shown in its place.
func UserFacingText(err error) string {
	var engineErr *Error
	if errors.As(err, &engineErr) && engineErr.Code == CodeInputTooLong {
		return TextInputTooLong
	}
	return TextGenerateFailed
}
