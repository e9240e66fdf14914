package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"habitsync/internal/middleware"
)

// NewRouter wires the handler into a chi router with the middleware chain.
func NewRouter(h *Handler, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	r.Route("/sync", func(r chi.Router) {
		r.Get("/tasks", h.ListChangedTasks)
		r.Post("/tasks/snapshot", h.SyncSnapshot)
		r.Post("/tasks/{userId}", h.SyncTasks)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	if h.features.TaskLogs {
		r.Route("/task-logs", func(r chi.Router) {
			r.Post("/", h.CreateTaskLog)
			r.Get("/", h.ListTaskLogs)
			r.Get("/{id}", h.GetTaskLog)
			r.Put("/{id}", h.UpdateTaskLog)
			r.Delete("/{id}", h.DeleteTaskLog)
		})
	}

	return r
}
