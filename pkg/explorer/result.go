package explorer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/insightone/insightone-mcp/pkg/contenttype"
)

// ExecutionResult is the outcome of one endpoint call.
type ExecutionResult struct {
	// ID is assigned when the result is kept in a result cache.
	ID          string            `json:"id,omitempty"`
	EndpointID  string            `json:"endpoint_id"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Status      int               `json:"status"`
	ContentKind contenttype.Kind  `json:"content_kind"`
	Payload     any               `json:"payload"`
	Headers     map[string]string `json:"response_headers,omitempty"`
	DurationMs  int64             `json:"duration_ms"`

	body []byte
}

// CSVPayload is the payload of a CSV response.
type CSVPayload struct {
	CSV string `json:"csv"`
}

// ErrorPayload is the payload of a synthetic result built from a failure.
type ErrorPayload struct {
	Error string `json:"error"`
	// Detail is the API's error body, decoded when it is JSON.
	Detail any `json:"detail,omitempty"`
}

// Body returns the raw response body. It is nil for synthetic results.
func (r *ExecutionResult) Body() []byte {
	return r.body
}

// CSV returns the CSV text of a CSV result.
func (r *ExecutionResult) CSV() (string, bool) {
	p, ok := r.Payload.(CSVPayload)
	return p.CSV, ok
}

// Failed reports whether the result carries an ErrorPayload.
func (r *ExecutionResult) Failed() bool {
	_, ok := r.Payload.(ErrorPayload)
	return ok
}

// ResultFromError converts an execution failure into a synthetic result so
// the failure can be shown where a response would be. HTTP and decode
// failures keep their status; anything else reports 500.
func ResultFromError(err error) *ExecutionResult {
	res := &ExecutionResult{
		Status:      http.StatusInternalServerError,
		ContentKind: contenttype.KindJSON,
	}
	payload := ErrorPayload{Error: err.Error()}

	var statusErr *HTTPStatusError
	var decodeErr *DecodeError
	switch {
	case errors.As(err, &statusErr):
		res.Status = statusErr.Status
		if statusErr.Body != "" {
			var detail any
			if json.Unmarshal([]byte(statusErr.Body), &detail) == nil {
				payload.Detail = detail
			} else {
				payload.Detail = statusErr.Body
			}
		}
	case errors.As(err, &decodeErr):
		res.Status = decodeErr.Status
	}

	res.Payload = payload
	return res
}
