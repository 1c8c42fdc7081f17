package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// Transport performs one request against the remote store and returns the raw
// JSON response body. Implementations map every failure to an *errors.AppError.
type Transport interface {
	Do(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// HTTPTransport implements Transport over net/http
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL. A zero timeout disables the per-request limit.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewHTTPTransportWithClient uses the given client, e.g. one from httptest.Server.Client()
func NewHTTPTransportWithClient(baseURL string, client *http.Client) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Do sends body as JSON (when non-nil) and returns the response body
func (t *HTTPTransport) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	operation := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewTransportError(operation, err)
		}
		reader = bytes.NewReader(payload)
		logging.Debugf("%s %s", operation, payload)
	} else {
		logging.Debugf("%s", operation)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// A store that flags the failure in an envelope gets its message surfaced verbatim
		if env, ok := decodeEnvelope(data); ok && env.Err {
			return nil, errors.NewRemoteError(operation, env.message())
		}
		return nil, errors.NewTransportError(operation,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(data) {
		return nil, errors.NewTransportError(operation, fmt.Errorf("malformed JSON response"))
	}

	return json.RawMessage(data), nil
}
