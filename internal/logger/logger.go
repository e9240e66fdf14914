package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a JSON structured logger. Level comes from LOG_LEVEL, default
// info.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	log.SetLevel(logrus.InfoLevel)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if lvl, err := logrus.ParseLevel(raw); err == nil {
			log.SetLevel(lvl)
		}
	}
	return log
}
