package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Every cron-fired job gets this long before its context is cancelled.
const reminderJobTimeout = 30 * time.Second

// ReminderScheduler drives the reminder jobs on cron: a periodic due-task
// sweep and one daily digest.
type ReminderScheduler struct {
	cron      *cron.Cron
	reminders *ReminderService
	log       *logrus.Logger
}

func NewReminderScheduler(reminders *ReminderService, log *logrus.Logger, loc *time.Location) *ReminderScheduler {
	return &ReminderScheduler{
		cron:      cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		reminders: reminders,
		log:       log,
	}
}

// ScheduleSweep fires SendDueReminders on the given cadence.
func (s *ReminderScheduler) ScheduleSweep(every time.Duration) error {
	if every < time.Second {
		return fmt.Errorf("sweep cadence %s is below one second", every)
	}
	spec := fmt.Sprintf("@every %ds", int(every.Seconds()))
	_, err := s.cron.AddFunc(spec, s.run("reminder sweep", s.reminders.SendDueReminders))
	return err
}

// ScheduleDigest fires SendDailyDigest once a day at the given HH:MM time.
func (s *ReminderScheduler) ScheduleDigest(at string) error {
	spec, err := digestSpec(at)
	if err != nil {
		return err
	}
	_, err = s.cron.AddFunc(spec, s.run("daily digest", s.reminders.SendDailyDigest))
	return err
}

func (s *ReminderScheduler) run(name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		if err := job(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.WithError(err).Warn(name)
		}
	}
}

func (s *ReminderScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *ReminderScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func digestSpec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("digest time %q is not HH:MM: %w", at, err)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}
