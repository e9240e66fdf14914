package http

import (
	"github.com/sirupsen/logrus"

	"habitsync/internal/config"
	"habitsync/internal/repository"
	"habitsync/internal/service"
	"habitsync/internal/sync"
)

// Handler bundles the dependencies of the HTTP surface.
type Handler struct {
	engine   *sync.Engine
	tasks    *service.TaskService
	taskRepo *repository.TaskRepository
	users    *repository.UserRepository
	logs     *repository.TaskLogRepository
	features config.Features
	log      *logrus.Logger
}

func NewHandler(
	engine *sync.Engine,
	tasks *service.TaskService,
	taskRepo *repository.TaskRepository,
	users *repository.UserRepository,
	logs *repository.TaskLogRepository,
	features config.Features,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		engine:   engine,
		tasks:    tasks,
		taskRepo: taskRepo,
		users:    users,
		logs:     logs,
		features: features,
		log:      log,
	}
}
