package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"habitsync/internal/model"
	"habitsync/internal/timeutil"
)

type taskLogPayload struct {
	ID          string            `json:"id"`
	TaskID      string            `json:"taskId"`
	UserID      string            `json:"userId"`
	CompletedAt *timeutil.Instant `json:"completed_at"`
}

// CreateTaskLog handles POST /task-logs.
func (h *Handler) CreateTaskLog(w http.ResponseWriter, r *http.Request) {
	var p taskLogPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if p.ID == "" || p.TaskID == "" || p.UserID == "" || p.CompletedAt == nil || !p.CompletedAt.Valid {
		badRequest(w, "id, taskId, userId and completed_at are required")
		return
	}

	log := model.TaskLog{
		ID:          p.ID,
		TaskID:      p.TaskID,
		UserID:      p.UserID,
		CompletedAt: p.CompletedAt.Time,
	}
	if err := h.logs.Create(r.Context(), &log); err != nil {
		h.respondError(w, r, err, "TaskLog not found")
		return
	}
	writeJSON(w, http.StatusCreated, toTaskLogResponse(log))
}

// ListTaskLogs handles GET /task-logs with optional taskId/userId filters.
func (h *Handler) ListTaskLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.List(r.Context(), r.URL.Query().Get("taskId"), r.URL.Query().Get("userId"))
	if err != nil {
		h.respondError(w, r, err, "TaskLog not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskLogResponses(logs))
}

// GetTaskLog handles GET /task-logs/{id}.
func (h *Handler) GetTaskLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.logs.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "TaskLog not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskLogResponse(*log))
}

// UpdateTaskLog handles PUT /task-logs/{id}.
func (h *Handler) UpdateTaskLog(w http.ResponseWriter, r *http.Request) {
	var p taskLogPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if p.TaskID != "" {
		updates["task_id"] = p.TaskID
	}
	if p.UserID != "" {
		updates["user_id"] = p.UserID
	}
	if p.CompletedAt != nil && p.CompletedAt.Valid {
		updates["completed_at"] = p.CompletedAt.Time
	}
	if len(updates) == 0 {
		badRequest(w, "no fields to update")
		return
	}

	log, err := h.logs.Update(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		h.respondError(w, r, err, "TaskLog not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskLogResponse(*log))
}

// DeleteTaskLog handles DELETE /task-logs/{id}.
func (h *Handler) DeleteTaskLog(w http.ResponseWriter, r *http.Request) {
	if err := h.logs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err, "TaskLog not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
