package engine

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/gateway"
)

// fakeGateway is an in-memory store; the *Err fields force failures
type fakeGateway struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
	clock  time.Time

	listErr   error
	createErr error
	modifyErr error
	removeErr error

	listCalls   int
	createCalls int
	modifyCalls int
	removeCalls int
	lastPatch   domain.Patch
	listGate    chan struct{}
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

func (f *fakeGateway) Create(ctx context.Context, draft domain.Draft) (*gateway.WireTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	due, _ := domain.CanonicalDate(draft.DueDate)
	f.clock = f.clock.Add(time.Minute)
	task := domain.Task{
		ID:        f.nextID,
		Title:     draft.Title,
		CreatedAt: f.clock,
		Priority:  draft.Priority,
		Category:  draft.Category,
		DueDate:   due,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return &gateway.WireTask{ID: task.ID, Title: task.Title}, nil
}

func (f *fakeGateway) List(ctx context.Context) ([]domain.Task, error) {
	if f.listGate != nil {
		<-f.listGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Task, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = t.Normalize()
	}
	return out, nil
}

func (f *fakeGateway) Complete(ctx context.Context, id int64) error {
	completed := true
	return f.Modify(ctx, id, domain.Patch{Completed: &completed})
}

func (f *fakeGateway) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
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

func (f *fakeGateway) setTasks(tasks ...domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = tasks
}

type notice struct {
	operation string
	err       error
}

// recordingNotifier collects failure notices
type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) Notify(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{operation, err})
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}
