package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"habitsync/internal/model"
	"habitsync/internal/service"
	"habitsync/internal/sync"
	"habitsync/internal/timeutil"
)

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var p sync.TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if p.ID == "" || p.UserID == "" || p.Title == "" {
		badRequest(w, "id, userId and title are required")
		return
	}

	task := model.Task{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Day:         p.Day.TimePtr(),
		Daytime:     p.Daytime,
		Notify:      p.Notify,
		Recurring:   p.Recurring,
		CompletedAt: p.CompletedAt.TimePtr(),
		Deleted:     p.Deleted,
	}
	if p.UpdatedAt.Valid {
		task.UpdatedAt = p.UpdatedAt.Time
	}
	if p.CreatedAt.Valid {
		task.CreatedAt = p.CreatedAt.Time
	}

	created, err := h.tasks.Create(r.Context(), &task)
	if err != nil {
		h.respondError(w, r, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(*created))
}

// ListTasks handles GET /tasks with an optional userId filter. Soft-deleted
// tasks are excluded.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.respondError(w, r, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// GetTask handles GET /tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}

// optionalInstant distinguishes a field that was absent from one sent as an
// explicit null: only the latter calls UnmarshalJSON.
type optionalInstant struct {
	timeutil.Instant
	set bool
}

func (o *optionalInstant) UnmarshalJSON(data []byte) error {
	o.set = true
	return o.Instant.UnmarshalJSON(data)
}

type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Day         optionalInstant `json:"day"`
	Daytime     *int            `json:"daytime"`
	Notify      *bool           `json:"notify"`
	Recurring   *string         `json:"recurring"`
	CompletedAt optionalInstant `json:"completedAt"`
}

// UpdateTask handles PUT /tasks/{id}. Only fields present in the body are
// changed; an explicit null clears an optional date.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	in := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Daytime:     req.Daytime,
		Notify:      req.Notify,
		Recurring:   req.Recurring,
	}
	if req.Day.set {
		if req.Day.Valid {
			in.Day = req.Day.TimePtr()
		} else {
			in.ClearDay = true
		}
	}
	if req.CompletedAt.set {
		if req.CompletedAt.Valid {
			in.CompletedAt = req.CompletedAt.TimePtr()
		} else {
			in.ClearDone = true
		}
	}

	task, err := h.tasks.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.respondError(w, r, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}

// DeleteTask handles DELETE /tasks/{id} and returns the deleted task.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(*task))
}
