package cli

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/engine"
	"taskboard/internal/gateway"
)

// fakeGateway is an in-memory remote collection
type fakeGateway struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
	clock  time.Time

	listErr   error
	createErr error
	modifyErr error
	removeErr error

	createCalls int
	modifyCalls int
	lastDraft   domain.Draft
	lastPatch   domain.Patch
}

func newFakeGateway(tasks ...domain.Task) *fakeGateway {
	f := &fakeGateway{nextID: 1, clock: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	for _, t := range tasks {
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
		f.tasks = append(f.tasks, t)
	}
	return f
}

func (f *fakeGateway) factory() GatewayFactory {
	return func(*config.Config) engine.Gateway { return f }
}

func (f *fakeGateway) Create(ctx context.Context, draft domain.Draft) (*gateway.WireTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastDraft = draft
	if f.createErr != nil {
		return nil, f.createErr
	}
	due, _ := domain.CanonicalDate(draft.DueDate)
	f.clock = f.clock.Add(time.Minute)
	f.tasks = append(f.tasks, domain.Task{
		ID: f.nextID, Title: draft.Title, CreatedAt: f.clock,
		Priority: draft.Priority, Category: draft.Category, DueDate: due,
	})
	f.nextID++
	return &gateway.WireTask{ID: f.nextID - 1, Title: draft.Title}, nil
}

func (f *fakeGateway) List(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Task(nil), f.tasks...), nil
}

func (f *fakeGateway) Complete(ctx context.Context, id int64) error {
	done := true
	return f.Modify(ctx, id, domain.Patch{Completed: &done})
}

func (f *fakeGateway) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeGateway) Modify(ctx context.Context, id int64, patch domain.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modifyCalls++
	f.lastPatch = patch
	if f.modifyErr != nil {
		return f.modifyErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		if patch.Priority != nil {
			f.tasks[i].Priority = *patch.Priority
		}
		if patch.Category != nil {
			f.tasks[i].Category = *patch.Category
		}
		if patch.DueDate != nil {
			f.tasks[i].DueDate, _ = domain.CanonicalDate(*patch.DueDate)
		}
	}
	return nil
}
