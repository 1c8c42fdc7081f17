// Package gateway talks to the remote task store. It converts between the
// store's loosely-shaped records and normalized domain tasks.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/logging"
)

// Gateway performs task operations against one remote collection
type Gateway struct {
	transport  Transport
	collection string
}

// New creates a gateway for the named collection, e.g. "tasks"
func New(transport Transport, collection string) *Gateway {
	collection = strings.Trim(collection, "/")
	if collection == "" {
		collection = "tasks"
	}
	return &Gateway{transport: transport, collection: collection}
}

func (g *Gateway) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", g.collection, id)
}

// Create sends a new task. The title is sent as given; completed is always false.
// An unparseable due date is dropped with a warning.
func (g *Gateway) Create(ctx context.Context, draft domain.Draft) (*WireTask, error) {
	req := createRequest{
		Title:    draft.Title,
		Priority: string(draft.Priority),
		Category: string(draft.Category),
		DueDate:  outboundDate(draft.DueDate),
	}

	raw, err := g.transport.Do(ctx, http.MethodPost, g.collection, req)
	if err != nil {
		return nil, err
	}
	return decodeRecord("create task", raw)
}

// List fetches the whole collection as normalized domain tasks
func (g *Gateway) List(ctx context.Context) ([]domain.Task, error) {
	raw, err := g.transport.Do(ctx, http.MethodGet, g.collection, nil)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeListResponse("list tasks", raw)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(resp.Tasks))
	for _, w := range resp.Tasks {
		tasks = append(tasks, w.ToDomain())
	}
	logging.Debugf("listed %d tasks (wrapped=%t token=%q)", len(tasks), resp.Kind == ResponseWrapped, resp.Token)
	return tasks, nil
}

// Complete marks a task completed
func (g *Gateway) Complete(ctx context.Context, id int64) error {
	completed := true
	raw, err := g.transport.Do(ctx, http.MethodPut, g.itemPath(id), updateRequest{Completed: &completed})
	if err != nil {
		return err
	}
	_, err = decodeRecord("complete task", raw)
	return err
}

// Remove deletes a task. Whether it exists is left to the store.
func (g *Gateway) Remove(ctx context.Context, id int64) error {
	raw, err := g.transport.Do(ctx, http.MethodDelete, g.itemPath(id), nil)
	if err != nil {
		return err
	}
	_, err = decodeRecord("remove task", raw)
	return err
}

// Modify sends the supplied subset of fields. The due date goes out in
// canonical form only; an empty due date clears it. When nothing is left to
// send, e.g. the only field was an unreadable due date, no request is made.
func (g *Gateway) Modify(ctx context.Context, id int64, patch domain.Patch) error {
	req := updateRequest{
		Title:     patch.Title,
		Completed: patch.Completed,
	}
	if patch.Priority != nil {
		p := string(*patch.Priority)
		req.Priority = &p
	}
	if patch.Category != nil {
		c := string(*patch.Category)
		req.Category = &c
	}
	if patch.DueDate != nil {
		if strings.TrimSpace(*patch.DueDate) == "" {
			empty := ""
			req.DueDate = &empty
		} else if d := outboundDate(*patch.DueDate); d != "" {
			req.DueDate = &d
		}
	}

	if req.isEmpty() {
		logging.Debugf("modify task %d: nothing to send", id)
		return nil
	}

	raw, err := g.transport.Do(ctx, http.MethodPut, g.itemPath(id), req)
	if err != nil {
		return err
	}
	_, err = decodeRecord("modify task", raw)
	return err
}

// outboundDate canonicalizes a user-supplied date. Failures are logged and
// yield "" so the field is left out of the request.
func outboundDate(input string) string {
	canonical, err := domain.CanonicalDate(input)
	if err != nil {
		logging.Warnf("ignoring due date: %v", err)
		return ""
	}
	return canonical
}
