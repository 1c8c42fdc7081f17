// Package engine holds the task state engine: the single owner of the task
// collection and the view parameters derived from it.
//
// Every mutation calls the gateway and then replaces the whole collection with
// a fresh List result. Overlapping mutations are not ordered; the collection
// reflects whichever List call resolved last.
package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/gateway"
	"taskboard/internal/logging"
	"taskboard/internal/validation"
)

// State is the engine lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Gateway is the remote collection the engine synchronizes with
type Gateway interface {
	Create(ctx context.Context, draft domain.Draft) (*gateway.WireTask, error)
	List(ctx context.Context) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
	Modify(ctx context.Context, id int64, patch domain.Patch) error
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	SettleDelay time.Duration
	Locale      string
	Notifier    Notifier
	Validator   *validation.TaskValidator
	Now         func() time.Time
}

// DefaultSettleDelay is the pause after a create before the collection is refetched
const DefaultSettleDelay = 300 * time.Millisecond

// Engine owns the task collection and view parameters
type Engine struct {
	gateway   Gateway
	notifier  Notifier
	validator *validation.TaskValidator
	settle    time.Duration
	locale    language.Tag
	now       func() time.Time

	mu        sync.RWMutex
	state     State
	tasks     []domain.Task
	params    domain.ViewParams
	selected  domain.Category
	fetching  int
	readyOnce sync.Once
	ready     chan struct{}
}

// New creates an engine and immediately starts loading the collection in the background
func New(ctx context.Context, gw Gateway, opts Options) *Engine {
	e := &Engine{
		gateway:   gw,
		notifier:  opts.Notifier,
		validator: opts.Validator,
		settle:    opts.SettleDelay,
		locale:    language.English,
		now:       opts.Now,
		params:    domain.DefaultViewParams(),
		selected:  domain.DefaultCategory,
		ready:     make(chan struct{}),
	}
	if e.notifier == nil {
		e.notifier = LogNotifier{}
	}
	if e.validator == nil {
		e.validator = validation.NewTaskValidator()
	}
	if e.settle < 0 {
		e.settle = 0
	} else if e.settle == 0 {
		e.settle = DefaultSettleDelay
	}
	if opts.Locale != "" {
		if tag, err := language.Parse(opts.Locale); err == nil {
			e.locale = tag
		} else {
			logging.Warnf("unknown locale %q, using %s", opts.Locale, e.locale)
		}
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.mu.Lock()
	e.state = StateLoading
	e.fetching++
	e.mu.Unlock()

	go e.initialLoad(ctx)
	return e
}

func (e *Engine) initialLoad(ctx context.Context) {
	tasks, err := e.gateway.List(ctx)
	e.finishFetch("load tasks", tasks, err)

	e.mu.Lock()
	e.state = StateReady
	e.mu.Unlock()
	e.readyOnce.Do(func() { close(e.ready) })
}

// Ready is closed once the initial load has finished, successfully or not
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// WaitReady blocks until the initial load finishes or ctx is done
func (e *Engine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resync replaces the collection with a fresh List result
func (e *Engine) resync(ctx context.Context) {
	e.mu.Lock()
	e.fetching++
	e.mu.Unlock()

	tasks, err := e.gateway.List(ctx)
	e.finishFetch("refresh tasks", tasks, err)
}

// finishFetch stores a List outcome. A failed fetch empties the collection.
func (e *Engine) finishFetch(operation string, tasks []domain.Task, err error) {
	if err != nil {
		e.fail(operation, err)
		tasks = nil
	}

	collection := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		collection = append(collection, t.Normalize())
	}

	e.mu.Lock()
	e.tasks = collection
	e.fetching--
	e.mu.Unlock()

	logging.Debugf("collection replaced: %d tasks", len(collection))
}

func (e *Engine) fail(operation string, err error) {
	if errors.ShouldLogError(err) {
		logging.Errorf("%s failed: %v", operation, err)
	}
	e.notifier.Notify(operation, err)
}

// AddTask creates a task from draft. Validation failures return before any
// network call. Gateway failures are notified and returned. Once the create
// succeeds AddTask returns nil, even if ctx ends during the settle delay.
func (e *Engine) AddTask(ctx context.Context, draft domain.Draft) error {
	if err := e.validator.ValidateDraft(draft); err != nil {
		return err
	}

	if _, err := e.gateway.Create(ctx, draft); err != nil {
		e.fail("add task", err)
		return err
	}

	if err := e.sleep(ctx, e.settle); err != nil {
		// the task exists remotely; refetch anyway so it shows up
		logging.Debugf("settle delay cut short: %v", err)
		ctx = context.WithoutCancel(ctx)
	}
	e.resync(ctx)
	return nil
}

// CompleteTask marks a task completed. Failures are notified, not returned.
func (e *Engine) CompleteTask(ctx context.Context, id int64) {
	if err := e.gateway.Complete(ctx, id); err != nil {
		e.fail("complete task", err)
		return
	}
	e.resync(ctx)
}

// DeleteTask removes a task. Failures are notified, not returned.
func (e *Engine) DeleteTask(ctx context.Context, id int64) {
	if err := e.gateway.Remove(ctx, id); err != nil {
		e.fail("delete task", err)
		return
	}
	e.resync(ctx)
}

// UpdateTask applies patch to a task. A supplied empty title is rejected
// before any network call. Gateway failures are notified and returned.
func (e *Engine) UpdateTask(ctx context.Context, id int64, patch domain.Patch) error {
	if err := e.validator.ValidatePatch(id, patch); err != nil {
		return err
	}

	if err := e.gateway.Modify(ctx, id, patch); err != nil {
		e.fail("update task", err)
		return err
	}
	e.resync(ctx)
	return nil
}

// Refresh refetches the collection on demand
func (e *Engine) Refresh(ctx context.Context) {
	e.resync(ctx)
}

func (e *Engine) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the lifecycle state
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Loading reports whether any fetch is in flight
func (e *Engine) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state != StateReady || e.fetching > 0
}

// Snapshot returns a copy of the raw collection in store order
func (e *Engine) Snapshot() []domain.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Task(nil), e.tasks...)
}

// Tasks returns the collection filtered and sorted by the current view parameters
func (e *Engine) Tasks() []domain.Task {
	e.mu.RLock()
	tasks, params := e.tasks, e.params
	e.mu.RUnlock()
	return FilteredAndSortedIn(tasks, params, e.locale)
}

// Stats returns aggregate statistics for the full collection
func (e *Engine) Stats() domain.Stats {
	e.mu.RLock()
	tasks := e.tasks
	e.mu.RUnlock()
	return Statistics(tasks, e.now())
}

// ViewParams returns the current view parameters
func (e *Engine) ViewParams() domain.ViewParams {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params
}

// SetViewParams replaces all view parameters after validating them
func (e *Engine) SetViewParams(params domain.ViewParams) error {
	if err := e.validator.ValidateViewParams(params); err != nil {
		return err
	}
	e.mu.Lock()
	e.params = params
	e.mu.Unlock()
	return nil
}

// Query returns the search text
func (e *Engine) Query() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Query
}

// SetQuery sets the search text
func (e *Engine) SetQuery(query string) {
	e.mu.Lock()
	e.params.Query = query
	e.mu.Unlock()
}

// StatusFilter returns the completion-state filter
func (e *Engine) StatusFilter() domain.StatusFilter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Status
}

// SetStatusFilter sets the completion-state filter
func (e *Engine) SetStatusFilter(f domain.StatusFilter) error {
	if !f.IsValid() {
		return errors.NewInvalidInputError("status", f, "must be one of all, active, completed")
	}
	e.mu.Lock()
	e.params.Status = f
	e.mu.Unlock()
	return nil
}

// CategoryFilter returns the category filter
func (e *Engine) CategoryFilter() domain.CategoryFilter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Category
}

// SetCategoryFilter sets the category filter
func (e *Engine) SetCategoryFilter(f domain.CategoryFilter) error {
	if !f.IsValid() {
		return errors.NewInvalidInputError("category", f, "must be all or a known category")
	}
	e.mu.Lock()
	e.params.Category = f
	e.mu.Unlock()
	return nil
}

// SortKey returns the sort key
func (e *Engine) SortKey() domain.SortKey {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.params.Sort
}

// SetSortKey sets the sort key
func (e *Engine) SetSortKey(k domain.SortKey) error {
	if !k.IsValid() {
		return errors.NewInvalidInputError("sort", k, "must be one of date, priority, title")
	}
	e.mu.Lock()
	e.params.Sort = k
	e.mu.Unlock()
	return nil
}

// SelectedCategory returns the category preselected for new drafts
func (e *Engine) SelectedCategory() domain.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

// SetSelectedCategory sets the category preselected for new drafts
func (e *Engine) SetSelectedCategory(c domain.Category) error {
	if !c.IsValid() {
		return errors.NewInvalidInputError("category", c, "must be a known category")
	}
	e.mu.Lock()
	e.selected = c
	e.mu.Unlock()
	return nil
}

// NewDraft returns a draft titled title with the selected category applied
func (e *Engine) NewDraft(title string) domain.Draft {
	return domain.Draft{
		Title:    title,
		Priority: domain.DefaultPriority,
		Category: e.SelectedCategory(),
	}
}
