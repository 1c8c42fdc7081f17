package store

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// TaskHandler serves the task collection
type TaskHandler struct {
	repo      sqlite.Repository
	validator *validation.TaskValidator
}

// NewTaskHandler creates a handler backed by repo
func NewTaskHandler(repo sqlite.Repository, validator *validation.TaskValidator) *TaskHandler {
	return &TaskHandler{repo: repo, validator: validator}
}

// Create inserts a task and returns the stored record
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewInvalidInputError("body", nil, err.Error()))
		return
	}

	task, err := newTask(h.validator, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.repo.CreateTask(c.Request.Context(), task); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, toRecord(task))
}

// List returns every task in insertion order
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.repo.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, toRecords(tasks), len(tasks))
}

// Get returns one task
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	task, err := h.repo.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toRecord(task))
}

// Update applies a partial update and returns the stored record
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.NewInvalidInputError("body", nil, err.Error()))
		return
	}

	update, err := newUpdate(h.validator, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.repo.UpdateTask(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, toRecord(task))
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id})
}

func (h *TaskHandler) parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		err = h.validator.ValidateTaskID(id)
	}
	if err != nil {
		respondError(c, errors.NewInvalidInputError("id", raw, "must be a positive integer"))
		return 0, false
	}
	return id, true
}
