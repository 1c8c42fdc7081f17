package engine_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/engine"
	"taskboard/internal/gateway"
	"taskboard/internal/logging"
	"taskboard/internal/store"
)

func TestEngineAgainstReferenceStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewConfig()

	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	server := httptest.NewServer(store.New(cfg, repo).Router())
	defer server.Close()

	gw := gateway.New(gateway.NewHTTPTransportWithClient(server.URL, server.Client()), cfg.Remote.Collection)
	e := engine.New(context.Background(), gw, engine.Options{SettleDelay: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.WaitReady(ctx))
	assert.Empty(t, e.Snapshot())

	require.NoError(t, e.AddTask(ctx, domain.Draft{
		Title:    "Buy milk",
		Priority: domain.PriorityLow,
		Category: domain.CategoryShopping,
		DueDate:  "2023-01-01",
	}))
	require.NoError(t, e.AddTask(ctx, domain.Draft{Title: "Call mom"}))

	require.NoError(t, e.SetCategoryFilter(domain.FilterFor(domain.CategoryShopping)))
	tasks := e.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "2023-01-01", tasks[0].DueDate)
	assert.True(t, tasks[0].IsOverdue(time.Now()))
	assert.False(t, tasks[0].CreatedAt.IsZero())

	all := e.Snapshot()
	require.Len(t, all, 2)
	assert.Equal(t, domain.CategoryPersonal, all[1].Category)
	assert.Equal(t, domain.PriorityMedium, all[1].Priority)

	e.CompleteTask(ctx, tasks[0].ID)
	assert.Equal(t, 1, e.Stats().Completed)
	assert.Zero(t, e.Stats().Overdue)

	require.NoError(t, e.UpdateTask(ctx, all[1].ID, domain.TitlePatch("Call dad")))
	e.DeleteTask(ctx, tasks[0].ID)

	remaining := e.Snapshot()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Call dad", remaining[0].Title)
}

func startReferenceStore(t *testing.T, notices *[]string) *engine.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.NewConfig()

	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	server := httptest.NewServer(store.New(cfg, repo).Router())
	t.Cleanup(server.Close)

	gw := gateway.New(gateway.NewHTTPTransportWithClient(server.URL, server.Client()), cfg.Remote.Collection)
	e := engine.New(context.Background(), gw, engine.Options{
		SettleDelay: -1,
		Notifier: engine.NotifierFunc(func(operation string, err error) {
			*notices = append(*notices, operation+": "+err.Error())
		}),
	})
	require.NoError(t, e.WaitReady(context.Background()))
	return e
}

func TestUpdateWithUnreadableDueDateAgainstReferenceStore(t *testing.T) {
	previous := logging.Output
	logging.Output = &bytes.Buffer{}
	t.Cleanup(func() { logging.Output = previous })

	var notices []string
	e := startReferenceStore(t, &notices)
	ctx := context.Background()

	require.NoError(t, e.AddTask(ctx, domain.Draft{Title: "x", DueDate: "2024-03-20"}))
	id := e.Snapshot()[0].ID

	bad := "not a date"
	require.NoError(t, e.UpdateTask(ctx, id, domain.Patch{DueDate: &bad}))
	assert.Empty(t, notices)
	assert.Equal(t, "2024-03-20", e.Snapshot()[0].DueDate)
}

func TestListWithUnusualTimestampsStillLoads(t *testing.T) {
	previous := logging.Output
	logging.Output = &bytes.Buffer{}
	t.Cleanup(func() { logging.Output = previous })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"err":false,"result":[
			{"id":1,"title":"a","created_at":"2024-03-15T10:00:00Z"},
			{"id":2,"title":"b","created_at":"2024-03-15 10:00:00.123456+00"},
			{"id":3,"title":"c","created_at":"the other day"}]}`))
	}))
	defer server.Close()

	var notices []string
	gw := gateway.New(gateway.NewHTTPTransportWithClient(server.URL, server.Client()), "tasks")
	e := engine.New(context.Background(), gw, engine.Options{
		Notifier: engine.NotifierFunc(func(operation string, err error) {
			notices = append(notices, operation)
		}),
	})
	require.NoError(t, e.WaitReady(context.Background()))

	assert.Empty(t, notices)
	assert.Len(t, e.Snapshot(), 3)
}
