package timezone_test

import (
	"rental/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	require.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestFormat(t *testing.T) {
	instant := time.Date(2026, 10, 14, 8, 30, 0, 0, timezone.GetLocation())

	assert.Equal(t, "2026-10-14 08:30", timezone.Format(instant.UTC(), "2006-01-02 15:04"))
}

func TestDay(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		want    string
	}{
		{name: "midday", instant: time.Date(2026, 10, 14, 12, 0, 0, 0, timezone.GetLocation()), want: "2026-10-14"},
		{name: "last minute", instant: time.Date(2026, 10, 14, 23, 59, 0, 0, timezone.GetLocation()), want: "2026-10-14"},
		{name: "midnight", instant: time.Date(2026, 10, 15, 0, 0, 0, 0, timezone.GetLocation()), want: "2026-10-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Day(tt.instant))
		})
	}
}

func TestParseDay(t *testing.T) {
	day, err := timezone.ParseDay("2026-10-14")

	require.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), day.Location())
	assert.Equal(t, "2026-10-14", timezone.Day(day))

	_, err = timezone.ParseDay("14/10/2026")
	assert.Error(t, err)
}
