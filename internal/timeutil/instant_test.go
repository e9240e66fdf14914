package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
		want  time.Time
	}{
		{"null", `null`, false, time.Time{}},
		{"epoch number", `1700000000000`, true, time.UnixMilli(1700000000000).UTC()},
		{"epoch number with fraction", `1700000000000.0`, true, time.UnixMilli(1700000000000).UTC()},
		{"digit string", `"1700000000000"`, true, time.UnixMilli(1700000000000).UTC()},
		{"rfc3339", `"2023-11-14T22:13:20Z"`, true, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)},
		{"date only", `"2023-11-14"`, true, time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"empty string", `""`, false, time.Time{}},
		{"garbage string", `"not a date"`, false, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var i Instant
			require.NoError(t, json.Unmarshal([]byte(tc.in), &i))
			assert.Equal(t, tc.valid, i.Valid)
			if tc.valid {
				assert.True(t, tc.want.Equal(i.Time), "got %v, want %v", i.Time, tc.want)
			}
		})
	}
}

func TestInstantMarshal(t *testing.T) {
	out, err := json.Marshal(Instant{Time: time.UnixMilli(1700000000000), Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "1700000000000", string(out))

	out, err = json.Marshal(Instant{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestInstantRoundTripInStruct(t *testing.T) {
	type payload struct {
		Day Instant `json:"day"`
	}
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2024-06-01T10:00:00Z"}`), &p))
	require.True(t, p.Day.Valid)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":1717236000000}`, string(out))
}

func TestParse(t *testing.T) {
	got, ok := Parse("1700000000000")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), got.UnixMilli())

	got, ok = Parse("2023-11-14")
	require.True(t, ok)
	assert.Equal(t, 2023, got.Year())

	_, ok = Parse("")
	assert.False(t, ok)

	_, ok = Parse("yesterday-ish")
	assert.False(t, ok)
}

func TestFromTimeAndTimePtr(t *testing.T) {
	assert.False(t, FromTime(nil).Valid)
	assert.Nil(t, Instant{}.TimePtr())

	now := time.Now()
	i := FromTime(&now)
	require.True(t, i.Valid)
	ptr := i.TimePtr()
	require.NotNil(t, ptr)
	assert.True(t, now.Equal(*ptr))
}
