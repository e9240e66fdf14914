package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *ReminderScheduler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewReminderScheduler(nil, log, time.UTC)
}

func TestDigestSpec(t *testing.T) {
	tests := []struct {
		at   string
		spec string
		ok   bool
	}{
		{at: "09:00", spec: "0 0 9 * * *", ok: true},
		{at: "23:59", spec: "0 59 23 * * *", ok: true},
		{at: "7:30", spec: "0 30 7 * * *", ok: true},
		{at: "24:00", ok: false},
		{at: "09:60", ok: false},
		{at: "morning", ok: false},
		{at: "", ok: false},
	}
	for _, tc := range tests {
		spec, err := digestSpec(tc.at)
		if !tc.ok {
			assert.Error(t, err, tc.at)
			continue
		}
		require.NoError(t, err, tc.at)
		assert.Equal(t, tc.spec, spec, tc.at)
	}
}

func TestScheduleSweepRejectsSubSecondCadence(t *testing.T) {
	s := newTestScheduler(t)
	assert.Error(t, s.ScheduleSweep(0))
	assert.Error(t, s.ScheduleSweep(500*time.Millisecond))
	assert.NoError(t, s.ScheduleSweep(time.Minute))
}

func TestScheduleDigestRejectsBadTime(t *testing.T) {
	s := newTestScheduler(t)
	assert.Error(t, s.ScheduleDigest("not a time"))
	assert.NoError(t, s.ScheduleDigest("06:45"))
}
