package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"habitsync/internal/sync"
	"habitsync/internal/timeutil"
)

// SyncTasks handles POST /sync/tasks/{userId}. The body is a JSON array of
// task payloads; the response is the array of server tasks the client must
// overwrite locally.
func (h *Handler) SyncTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var batch []sync.TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil || batch == nil || userID == "" {
		badRequest(w, "userId path param and an array body are required")
		return
	}

	override, err := h.engine.Reconcile(r.Context(), userID, batch)
	if err != nil {
		h.respondError(w, r, err, "user tasks not found")
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(override))
}

// ListChangedTasks handles GET /sync/tasks?userId=&updated_after=. The
// updated_after filter accepts epoch milliseconds or a date string and is
// strict (strictly newer rows only).
func (h *Handler) ListChangedTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		badRequest(w, "userId is required")
		return
	}

	var since *time.Time
	if raw := r.URL.Query().Get("updated_after"); raw != "" {
		if t, ok := timeutil.Parse(raw); ok {
			since = &t
		}
	}

	tasks, err := h.taskRepo.ListUpdatedAfter(r.Context(), userID, since)
	if err != nil {
		h.respondError(w, r, err, "user tasks not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]taskResponse{"items": toTaskResponses(tasks)})
}

type snapshotRequest struct {
	UserID string             `json:"userId"`
	Items  []sync.TaskPayload `json:"items"`
}

// SyncSnapshot handles POST /sync/tasks/snapshot: same reconciliation as
// SyncTasks with an enveloped request and response.
func (h *Handler) SyncSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Items == nil {
		badRequest(w, "userId and items[] are required")
		return
	}

	override, err := h.engine.Reconcile(r.Context(), req.UserID, req.Items)
	if err != nil {
		h.respondError(w, r, err, "user tasks not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]taskResponse{"override": toTaskResponses(override)})
}
