package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"habitsync/internal/model"
)

// Notifier delivers a reminder text to a user.
type Notifier interface {
	Send(ctx context.Context, user model.User, text string) error
}

// Log is the fallback notifier used when no delivery channel is
// configured; reminders end up in the server log.
type Log struct {
	log *logrus.Logger
}

func NewLog(log *logrus.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Send(_ context.Context, user model.User, text string) error {
	l.log.WithFields(logrus.Fields{
		"user":  user.ID,
		"email": user.Email,
	}).Info("reminder: " + text)
	return nil
}
