package gateway

import (
	"context"
	"encoding/json"
)

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeTransport records calls and replays a canned response
type fakeTransport struct {
	calls    []recordedCall
	response string
	err      error
}

func (f *fakeTransport) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	call := recordedCall{Method: method, Path: path}
	if body != nil {
		data, _ := json.Marshal(body)
		_ = json.Unmarshal(data, &call.Body)
	}
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	if f.response == "" {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(f.response), nil
}

func (f *fakeTransport) lastCall() recordedCall {
	return f.calls[len(f.calls)-1]
}
