package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"habitsync/internal/model"
)

func TestTaskDueNow(t *testing.T) {
	// Wednesday 15:30, minute 930 of the day.
	now := wednesday
	today := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	cases := []struct {
		name string
		task model.Task
		want bool
	}{
		{"notify off", model.Task{Day: &today, Daytime: 900}, false},
		{"due today, time passed", model.Task{Notify: true, Day: &today, Daytime: 900}, true},
		{"due today, time not reached", model.Task{Notify: true, Day: &today, Daytime: 1000}, false},
		{"scheduled another day", model.Task{Notify: true, Day: &yesterday, Daytime: 900}, false},
		{"recurring on today", model.Task{Notify: true, Recurring: "0001000", Daytime: 900}, true},
		{"recurring on another day", model.Task{Notify: true, Recurring: "1110111", Daytime: 900}, false},
		{"completed today", model.Task{Notify: true, Day: &today, Daytime: 900, CompletedAt: &now}, false},
		{"completed yesterday", model.Task{Notify: true, Recurring: "1111111", Daytime: 900, CompletedAt: &yesterday}, true},
		{"no day and no mask", model.Task{Notify: true, Daytime: 900}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, taskDueNow(tc.task, now))
		})
	}
}

func TestFormatDigestOrdersByTime(t *testing.T) {
	tasks := []model.Task{
		{Title: "lunch", Daytime: 720},
		{Title: "wake up", Daytime: 420},
	}
	text := formatDigest(tasks, wednesday)
	assert.Less(t, strings.Index(text, "wake up"), strings.Index(text, "lunch"))
}
