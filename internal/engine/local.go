package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// LocalRuntime talks to a local inference server over HTTP on the
// loopback interface. The server streams newline-delimited JSON: load
// progress lines until the model is resident, and delta lines until a
// generation completes or fails.
type LocalRuntime struct {
	baseURL    string
	httpClient *http.Client
}

// NewLocalRuntime creates a runtime client for the server at baseURL,
// e.g. "http://127.0.0.1:8090". Streaming requests are bounded by the
// caller's context, not a client timeout.
func NewLocalRuntime(baseURL string) *LocalRuntime {
	return &LocalRuntime{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type loadRequest struct {
	Model string `json:"model"`
}

// Wire lines emitted by the runtime. A line carries exactly one of:
// progress, ready, delta/done, or a terminal error.
type runtimeLine struct {
	Progress *float64 `json:"progress,omitempty"`
	Ready    bool     `json:"ready,omitempty"`
	Delta    string   `json:"delta,omitempty"`
	Done     bool     `json:"done,omitempty"`
	Code     int64    `json:"code,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (l *runtimeLine) err() error {
	if l.Error == "" && l.Code == 0 {
		return nil
	}
	return &Error{Code: l.Code, Message: l.Error}
}

// Load requests the named model and forwards fractional progress until
// the server reports readiness.
func (r *LocalRuntime) Load(ctx context.Context, modelID string, onProgress func(float64)) error {
	body, err := r.post(ctx, "/v1/load", &loadRequest{Model: modelID})
	if err != nil {
		return err
	}
	defer body.Close()

	reader := bufio.NewReader(body)
	for {
		line, err := readLine(reader)
		if err == io.EOF {
			return errors.New("runtime closed the load stream before readiness")
		}
		if err != nil {
			return errors.Wrap(err, "reading load stream")
		}
		if line == nil {
			continue
		}
		if err := line.err(); err != nil {
			return err
		}
		if line.Progress != nil && onProgress != nil {
			onProgress(*line.Progress)
		}
		if line.Ready {
			return nil
		}
	}
}

// Complete starts one streaming generation.
func (r *LocalRuntime) Complete(ctx context.Context, request *CompletionRequest) (Stream, error) {
	body, err := r.post(ctx, "/v1/generate", request)
	if err != nil {
		return nil, err
	}
	return &localStream{body: body, reader: bufio.NewReader(body)}, nil
}

func (r *LocalRuntime) post(ctx context.Context, path string, payload interface{}) (io.ReadCloser, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(requestBody))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := r.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "contacting runtime")
	}
	if response.StatusCode != http.StatusOK {
		defer response.Body.Close()
		var line runtimeLine
		if err := json.NewDecoder(response.Body).Decode(&line); err == nil {
			if err := line.err(); err != nil {
				return nil, err
			}
		}
		return nil, errors.Errorf("runtime returned status %d", response.StatusCode)
	}
	return response.Body, nil
}

// readLine reads and parses one NDJSON line. Blank lines yield a nil
// line; malformed lines are skipped the same way.
func readLine(reader *bufio.Reader) (*runtimeLine, error) {
	raw, err := reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(bytes.TrimSpace(raw)) == 0 {
			return nil, io.EOF
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, err
		}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	line := &runtimeLine{}
	if err := json.Unmarshal(raw, line); err != nil {
		return nil, nil
	}
	return line, nil
}

type localStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
}

// Recv returns the next delta, io.EOF on completion, or the runtime's
// terminal error.
func (s *localStream) Recv() (*Delta, error) {
	if s.done {
		return nil, io.EOF
	}
	for {
		line, err := readLine(s.reader)
		if err == io.EOF {
			s.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading generation stream")
		}
		if line == nil {
			continue
		}
		if err := line.err(); err != nil {
			s.done = true
			return nil, err
		}
		if line.Done {
			s.done = true
			return nil, io.EOF
		}
		return &Delta{Text: line.Delta}, nil
	}
}

func (s *localStream) Close() {
	s.body.Close()
}
