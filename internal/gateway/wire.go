package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/logging"
)

// WireTask is a task record as the remote store sends it.
// Priority and category may be missing; due_date may carry a time component.
type WireTask struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	CreatedAt WireTime `json:"created_at"`
	Priority  string   `json:"priority,omitempty"`
	Category  string   `json:"category,omitempty"`
	DueDate   string   `json:"due_date,omitempty"`
}

// ToDomain converts the record into a normalized domain task
func (w WireTask) ToDomain() domain.Task {
	return domain.Task{
		ID:        w.ID,
		Title:     w.Title,
		Completed: w.Completed,
		CreatedAt: time.Time(w.CreatedAt),
		Priority:  domain.ParsePriority(w.Priority),
		Category:  domain.ParseCategory(w.Category),
		DueDate:   domain.DateFromWire(w.DueDate),
	}.Normalize()
}

// WireTime accepts RFC3339 strings, SQL-style timestamps, bare dates and unix
// milliseconds. Anything else decodes as the zero time with a warning.
type WireTime time.Time

// wireTimeLayouts are tried in order; fractional seconds are accepted after any of them
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	domain.CanonicalDateLayout,
}

// UnmarshalJSON implements json.Unmarshaler
func (t *WireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = WireTime{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*t = WireTime{}
			return nil
		}
		for _, layout := range wireTimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				*t = WireTime(parsed)
				return nil
			}
		}
		logging.Warnf("ignoring unrecognized timestamp %q", s)
		*t = WireTime{}
		return nil
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		logging.Warnf("ignoring unrecognized timestamp %s", data)
		*t = WireTime{}
		return nil
	}
	*t = WireTime(time.UnixMilli(ms).UTC())
	return nil
}

// MarshalJSON implements json.Marshaler
func (t WireTime) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

// Envelope is the wrapped response shape: {err, result, count?, token?}
type Envelope struct {
	Err    bool            `json:"err"`
	Result json.RawMessage `json:"result"`
	Count  *int            `json:"count,omitempty"`
	Token  string          `json:"token,omitempty"`
}

func (e Envelope) message() string {
	var s string
	if err := json.Unmarshal(e.Result, &s); err == nil {
		return s
	}
	if len(e.Result) == 0 || string(e.Result) == "null" {
		return "unknown error"
	}
	return string(e.Result)
}

// decodeEnvelope reports whether data is a JSON object carrying an "err" key
func decodeEnvelope(data []byte) (Envelope, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Envelope{}, false
	}
	if _, ok := fields["err"]; !ok {
		return Envelope{}, false
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, false
	}
	return env, true
}

// ResponseKind tags which shape a list response arrived in
type ResponseKind int

const (
	ResponseBare ResponseKind = iota
	ResponseWrapped
)

// ListResponse is the decoded form of a list response in either shape
type ListResponse struct {
	Kind  ResponseKind
	Tasks []WireTask
	Count int
	Token string
}

// DecodeListResponse decodes a bare array or an envelope. An envelope with
// err set yields a RemoteError carrying result as the message.
func DecodeListResponse(operation string, raw json.RawMessage) (ListResponse, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || string(data) == "null" {
		return ListResponse{Kind: ResponseBare, Tasks: []WireTask{}}, nil
	}

	switch data[0] {
	case '[':
		var tasks []WireTask
		if err := json.Unmarshal(data, &tasks); err != nil {
			return ListResponse{}, errors.NewTransportError(operation, err)
		}
		return ListResponse{Kind: ResponseBare, Tasks: tasks, Count: len(tasks)}, nil

	case '{':
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return ListResponse{}, errors.NewTransportError(operation, err)
		}
		if env.Err {
			return ListResponse{}, errors.NewRemoteError(operation, env.message())
		}
		tasks := []WireTask{}
		if len(env.Result) > 0 && string(env.Result) != "null" {
			if err := json.Unmarshal(env.Result, &tasks); err != nil {
				return ListResponse{}, errors.NewTransportError(operation, err)
			}
		}
		resp := ListResponse{Kind: ResponseWrapped, Tasks: tasks, Count: len(tasks), Token: env.Token}
		if env.Count != nil {
			resp.Count = *env.Count
		}
		return resp, nil
	}

	return ListResponse{}, errors.NewTransportError(operation, fmt.Errorf("unexpected list response: %.40s", data))
}

// decodeRecord unwraps a single-record response. A response that carries no
// record (e.g. an empty envelope) yields nil.
func decodeRecord(operation string, raw json.RawMessage) (*WireTask, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	if env, ok := decodeEnvelope(data); ok {
		if env.Err {
			return nil, errors.NewRemoteError(operation, env.message())
		}
		data = bytes.TrimSpace(env.Result)
	}

	if len(data) == 0 || data[0] != '{' {
		return nil, nil
	}

	var task WireTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, errors.NewTransportError(operation, err)
	}
	return &task, nil
}

type createRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority,omitempty"`
	Category  string `json:"category,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

type updateRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	Category  *string `json:"category,omitempty"`
	DueDate   *string `json:"due_date,omitempty"`
}

func (r updateRequest) isEmpty() bool {
	return r.Title == nil && r.Completed == nil && r.Priority == nil && r.Category == nil && r.DueDate == nil
}
