package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

// freeze pins the package clock to a KST wall time and returns a cleanup.
func freeze(t *testing.T, year int, month time.Month, day, hour, minute int) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(year, month, day, hour, minute, 0, 0, KST)))
	t.Cleanup(func() { SetClock(nil) })
}

func TestObservationRelease(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		want         Release
	}{
		{"after release lands", 14, 45, Release{BaseDate: "20260201", BaseTime: "1400"}},
		{"exactly at :40", 14, 40, Release{BaseDate: "20260201", BaseTime: "1400"}},
		{"before :40 uses previous hour", 14, 10, Release{BaseDate: "20260201", BaseTime: "1300"}},
		{"midnight rolls to previous day", 0, 5, Release{BaseDate: "20260131", BaseTime: "2300"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freeze(t, 2026, time.February, 1, tt.hour, tt.minute)
			assert.Equal(t, tt.want, ObservationRelease())
		})
	}
}

func TestHourlyForecastRelease(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		want         Release
	}{
		{"after release lands", 14, 50, Release{BaseDate: "20260201", BaseTime: "1430"}},
		{"exactly at :45", 14, 45, Release{BaseDate: "20260201", BaseTime: "1430"}},
		{"before :45 uses previous hour", 14, 30, Release{BaseDate: "20260201", BaseTime: "1330"}},
		{"midnight rolls to previous day", 0, 20, Release{BaseDate: "20260131", BaseTime: "2330"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freeze(t, 2026, time.February, 1, tt.hour, tt.minute)
			assert.Equal(t, tt.want, HourlyForecastRelease())
		})
	}
}

func TestVillageForecastRelease(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		want         Release
	}{
		{"mid-afternoon picks 14:00", 15, 0, Release{BaseDate: "20260201", BaseTime: "1400"}},
		{"just after 14:10 picks 14:00", 14, 10, Release{BaseDate: "20260201", BaseTime: "1400"}},
		{"just before 14:10 picks 11:00", 14, 9, Release{BaseDate: "20260201", BaseTime: "1100"}},
		{"late evening picks 23:00", 23, 30, Release{BaseDate: "20260201", BaseTime: "2300"}},
		{"before 02:10 uses yesterday 23:00", 1, 30, Release{BaseDate: "20260131", BaseTime: "2300"}},
		{"02:09 still yesterday", 2, 9, Release{BaseDate: "20260131", BaseTime: "2300"}},
		{"02:10 switches to today 02:00", 2, 10, Release{BaseDate: "20260201", BaseTime: "0200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freeze(t, 2026, time.February, 1, tt.hour, tt.minute)
			assert.Equal(t, tt.want, VillageForecastRelease())
		})
	}
}

func TestMidtermAnnounceTime(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		want         string
	}{
		{"early morning uses yesterday 18:00", 5, 59, "202601311800"},
		{"daytime uses 06:00", 6, 0, "202602010600"},
		{"afternoon uses 06:00", 17, 59, "202602010600"},
		{"evening uses 18:00", 18, 0, "202602011800"},
		{"late night uses 18:00", 23, 30, "202602011800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freeze(t, 2026, time.February, 1, tt.hour, tt.minute)
			assert.Equal(t, tt.want, MidtermAnnounceTime())
		})
	}
}

func TestToday(t *testing.T) {
	freeze(t, 2026, time.February, 1, 12, 0)

	assert.Equal(t, "20260201", Today(0))
	assert.Equal(t, "20260202", Today(1))
	assert.Equal(t, "20260204", Today(3))
}
