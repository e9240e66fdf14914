package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habitsync/internal/config"
	httpapi "habitsync/internal/http"
	"habitsync/internal/logger"
	"habitsync/internal/notify"
	"habitsync/internal/repository"
	"habitsync/internal/service"
	"habitsync/internal/sync"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	// Passwords are persisted verbatim; see the model doc. Integrators must
	// not expose this service without an auth layer in front of it.
	log.Warn("user passwords are stored in plaintext; do not deploy unprotected")

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewTaskLogRepository(db)

	engine := sync.NewEngine(taskRepo, log)
	taskSvc := service.NewTaskService(taskRepo, cfg.Features)

	var notifier notify.Notifier = notify.NewLog(log)
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.WithError(err).Fatal("telegram")
		}
		notifier = tg
	}
	reminderSvc := service.NewReminderService(taskRepo, userRepo, notifier, log)

	scheduler := service.NewReminderScheduler(reminderSvc, log, time.Local)
	if cfg.ReminderInterval > 0 {
		if err := scheduler.ScheduleSweep(cfg.ReminderInterval); err != nil {
			log.WithError(err).Fatal("schedule reminders")
		}
	}
	if cfg.DailyDigestTime != "" {
		if err := scheduler.ScheduleDigest(cfg.DailyDigestTime); err != nil {
			log.WithError(err).Fatal("schedule digest")
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := httpapi.NewHandler(engine, taskSvc, taskRepo, userRepo, logRepo, cfg.Features, log)
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpapi.NewRouter(handler, log),
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("shutdown complete")
}
