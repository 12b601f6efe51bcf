package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is matched by any APIError carrying a 401 status.
	ErrUnauthorized = errors.New("upstream rejected the session token")
	// ErrNotFound is matched by any APIError carrying a 404 status.
	ErrNotFound = errors.New("upstream resource not found")
	// ErrMalformedResponse is returned when a body cannot be normalized.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// APIError is a non-2xx upstream response.
type APIError struct {
	StatusCode int
	// Message is the server-provided message, empty when the server sent none.
	Message string
	// Fields holds per-field validation messages when the server sent them.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream API error [%d]", e.StatusCode)
	}
	return fmt.Sprintf("upstream API error [%d]: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match status-class sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ServerMessage returns the upstream message carried by err, or fallback when there is none.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorBody covers the error shapes seen upstream:
// {"message": "..."}, {"error": "..."}, {"error": {"message": "...", "details": {...}}}, {"errors": {"field": ["..."]}}
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

type errorDetail struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(eb.Message)

	if len(eb.Error) > 0 {
		var s string
		var detail errorDetail
		switch {
		case json.Unmarshal(eb.Error, &s) == nil:
			if apiErr.Message == "" {
				apiErr.Message = s
			}
		case json.Unmarshal(eb.Error, &detail) == nil:
			if apiErr.Message == "" {
				apiErr.Message = detail.Message
			}
			if len(detail.Details) > 0 {
				apiErr.Fields = detail.Details
			}
		}
	}

	if len(eb.Errors) > 0 && apiErr.Fields == nil {
		fields := map[string]string{}
		var multi map[string][]string
		var single map[string]string
		if json.Unmarshal(eb.Errors, &multi) == nil {
			for k, v := range multi {
				if len(v) > 0 {
					fields[k] = v[0]
				}
			}
		} else if json.Unmarshal(eb.Errors, &single) == nil {
			fields = single
		}
		if len(fields) > 0 {
			apiErr.Fields = fields
		}
	}

	return apiErr
}
