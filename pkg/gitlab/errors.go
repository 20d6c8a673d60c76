package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidToken is returned by Start when GitLab rejects the credentials.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidEndpoint is returned by Start when no supported API version
	// answers at the configured URL.
	ErrInvalidEndpoint = errors.New("invalid GitLab endpoint")
)

// RemoteError is a non-success HTTP status returned by GitLab. The decoded
// error body is kept as-is.
type RemoteError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
	Body       []byte
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// TransportError is a failure below HTTP: connection refused, timeout,
// cancelled context.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from GitLab.
func IsNotFound(err error) bool {
	var remote *RemoteError

	return errors.As(err, &remote) && remote.StatusCode == 404
}

// newRemoteError extracts the message GitLab puts in error bodies. GitLab
// uses either {"message": ...} or {"error": ...}; message may itself be an
// object keyed by field name.
func newRemoteError(method, path string, status int, body []byte) *RemoteError {
	e := &RemoteError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       body,
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}

	switch {
	case len(payload.Message) > 0:
		e.Message = flattenMessage(payload.Message)
	case payload.Error != "":
		e.Message = payload.Error
	}

	return e
}

func flattenMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for _, key := range sortedKeys(fields) {
			parts = append(parts, fmt.Sprintf("%s: %s", key, strings.Join(fields[key], ", ")))
		}

		return strings.Join(parts, "; ")
	}

	return string(raw)
}
