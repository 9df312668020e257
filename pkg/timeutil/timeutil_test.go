package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDay(t *testing.T) {
	ts := time.Date(2026, 3, 15, 23, 45, 12, 0, time.FixedZone("TRT", 3*3600))
	got := TruncateDay(ts)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05", DayKey(ts))
}

func TestEachDay_InclusiveBothEnds(t *testing.T) {
	from := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	days := EachDay(from, to)
	assert.Len(t, days, 8)
	assert.Equal(t, "2026-03-01", DayKey(days[0]))
	assert.Equal(t, "2026-03-08", DayKey(days[len(days)-1]))
}

func TestEachDay_SingleDay(t *testing.T) {
	day := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	days := EachDay(day, day)
	assert.Len(t, days, 1)
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08", MonthKey(ts))
}
