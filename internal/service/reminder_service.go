package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"habitsync/internal/model"
	"habitsync/internal/notify"
	"habitsync/internal/repository"
)

// ReminderService sweeps for due notifiable tasks and builds the daily
// digest. Sweeps are best-effort: a failure for one user never aborts the
// run.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewReminderService(taskRepo *repository.TaskRepository, userRepo *repository.UserRepository, notifier notify.Notifier, log *logrus.Logger) *ReminderService {
	return &ReminderService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// SendDueReminders notifies every user about tasks that are due right now:
// notify is set, the task applies to today and its time of day has passed.
func (s *ReminderService) SendDueReminders(ctx context.Context) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		tasks, err := s.taskRepo.ListVisible(ctx, user.ID)
		if err != nil {
			s.log.WithError(err).WithField("user", user.ID).Warn("list tasks for reminders")
			continue
		}
		var due []model.Task
		for _, task := range tasks {
			if taskDueNow(task, now) {
				due = append(due, task)
			}
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.Send(ctx, user, formatDue(due)); err != nil {
			s.log.WithError(err).WithField("user", user.ID).Warn("send reminder")
		}
	}
	return nil
}

// SendDailyDigest sends every user a summary of what today holds.
func (s *ReminderService) SendDailyDigest(ctx context.Context) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		tasks, err := s.taskRepo.ListVisible(ctx, user.ID)
		if err != nil {
			s.log.WithError(err).WithField("user", user.ID).Warn("list tasks for digest")
			continue
		}
		var today []model.Task
		for _, task := range tasks {
			if appliesToday(task, now) {
				today = append(today, task)
			}
		}
		if len(today) == 0 {
			continue
		}
		if err := s.notifier.Send(ctx, user, formatDigest(today, now)); err != nil {
			s.log.WithError(err).WithField("user", user.ID).Warn("send digest")
		}
	}
	return nil
}

func taskDueNow(task model.Task, now time.Time) bool {
	if !task.Notify {
		return false
	}
	if !appliesToday(task, now) {
		return false
	}
	// Completed for the current occurrence.
	if task.CompletedAt != nil && sameDay(*task.CompletedAt, now) {
		return false
	}
	minuteOfDay := now.Hour()*60 + now.Minute()
	return minuteOfDay >= task.Daytime
}

func appliesToday(task model.Task, now time.Time) bool {
	if task.Recurring != "" {
		return recursOn(task.Recurring, now)
	}
	return task.Day != nil && sameDay(*task.Day, now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func formatDue(tasks []model.Task) string {
	sortByDaytime(tasks)
	var sb strings.Builder
	sb.WriteString("⏰ <b>Due now</b>\n")
	for _, task := range tasks {
		sb.WriteString(formatLine(task))
	}
	return strings.TrimSpace(sb.String())
}

func formatDigest(tasks []model.Task, now time.Time) string {
	sortByDaytime(tasks)
	var sb strings.Builder
	sb.WriteString("📋 <b>Today</b>\n")
	sb.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("2006-01-02")))
	for _, task := range tasks {
		sb.WriteString(formatLine(task))
	}
	return strings.TrimSpace(sb.String())
}

func sortByDaytime(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Daytime < tasks[j].Daytime
	})
}

func formatLine(task model.Task) string {
	var sb strings.Builder
	icon := "🟢"
	if task.Recurring != "" {
		icon = "♻️"
	}
	if task.CompletedAt != nil {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s %02d:%02d %s", icon, task.Daytime/60, task.Daytime%60,
		html.EscapeString(strings.TrimSpace(task.Title))))
	if task.Description != "" {
		sb.WriteString(fmt.Sprintf(" — <i>%s</i>", html.EscapeString(strings.TrimSpace(task.Description))))
	}
	sb.WriteByte('\n')
	return sb.String()
}
