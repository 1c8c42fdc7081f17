package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		layout    string
		want      string
	}{
		{"default layout", "2024-03-15", "", "Mar 15, 2024"},
		{"display layout", "2024-03-05", domain.DisplayDateLayout, "Mar 5, 2024"},
		{"custom layout", "2024-03-15", "02/01/2006", "15/03/2024"},
		{"unparseable", "soon", "02/01/2006", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDate(tt.canonical, tt.layout))
		})
	}
}

func TestRenderer_Tasks(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: 1, Title: "Late", Priority: domain.PriorityHigh, Category: domain.CategoryWork, DueDate: "2024-03-14"},
		{ID: 2, Title: "Late but done", Completed: true, Priority: domain.PriorityLow, Category: domain.CategoryHealth, DueDate: "2024-03-01"},
		{ID: 3, Title: "Undated", Priority: domain.PriorityMedium, Category: domain.CategoryOther},
	}

	var out bytes.Buffer
	NewRenderer(&out, config.DisplayConfig{DateFormat: domain.DisplayDateLayout, ShowIcons: true}).Tasks(tasks, now)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], "[ ]")
	assert.Contains(t, lines[1], "💼 Work")
	assert.Contains(t, lines[1], "Mar 14, 2024 (overdue)")
	assert.Contains(t, lines[2], "[x]")
	assert.NotContains(t, lines[2], "(overdue)")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "-"))
}

func TestRenderer_TasksWithoutIcons(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, config.DisplayConfig{}).Tasks([]domain.Task{{ID: 1, Title: "a", Category: domain.CategoryWork}}, time.Now())
	assert.NotContains(t, out.String(), "💼")
	assert.Contains(t, out.String(), "Work")
}

func TestRenderer_Empty(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, config.DisplayConfig{}).Tasks(nil, time.Now())
	assert.Equal(t, "No tasks found\n", out.String())
}

func TestBannerNotifier(t *testing.T) {
	var out bytes.Buffer
	n := NewBannerNotifier(&out)

	n.Notify("delete task", apperrors.NewRemoteError("delete task", "row locked"))
	n.Notify("load tasks", errors.New("boom"))

	assert.Equal(t, 2, n.Count())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "! delete task failed: The task service reported an error: row locked !", lines[1])
	assert.Equal(t, len(lines[1]), len(lines[0]))
	assert.Equal(t, "! load tasks failed: boom !", lines[4])
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("#42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-3", "x", ""} {
		_, err := parseTaskID(bad)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput), bad)
	}
}

func TestNewestWithTitle(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: 1, Title: "dup", CreatedAt: base},
		{ID: 5, Title: "dup", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "other", CreatedAt: base.Add(2 * time.Hour)},
	}

	task, ok := newestWithTitle(tasks, "dup")
	assert.True(t, ok)
	assert.Equal(t, int64(5), task.ID)

	_, ok = newestWithTitle(tasks, "missing")
	assert.False(t, ok)
}
