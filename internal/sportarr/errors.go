package sportarr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 8 << 10

// StatusError reports a non-2xx answer from Sportarr. Message carries the
// server-supplied explanation when the body contained one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sportarr returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("sportarr returned %d", e.Code)
}

func newStatusError(resp *http.Response) error {
	statusErr := &StatusError{Code: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return statusErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		statusErr.Message = strings.TrimSpace(payload.Message)
	}
	return statusErr
}

func successful(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
