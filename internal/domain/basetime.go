package domain

import (
	"fmt"
	"time"
)

// KST is the fixed Korea Standard Time zone (UTC+9, no DST). All KMA release
// schedules are defined in KST regardless of the host timezone.
var KST = time.FixedZone("KST", 9*60*60)

// Release identifies a forecast publication the API can be queried for.
type Release struct {
	BaseDate string `json:"base_date"` // YYYYMMDD
	BaseTime string `json:"base_time"` // HHmm
}

// villageReleaseHours are the eight daily village forecast releases. Data for
// each lands roughly 10 minutes past the hour.
var villageReleaseHours = []int{2, 5, 8, 11, 14, 17, 20, 23}

// ObservationRelease returns the newest queryable ultra-short-term observation
// release. Observations publish hourly at :40 with base_time HH00, so before
// :40 the previous hour is the latest complete release.
func ObservationRelease() Release {
	now := clock.Now().In(KST)
	if now.Minute() < 40 {
		now = now.Add(-time.Hour)
	}
	return Release{
		BaseDate: now.Format("20060102"),
		BaseTime: now.Format("15") + "00",
	}
}

// HourlyForecastRelease returns the newest queryable ultra-short-term forecast
// release. Forecasts publish hourly at :45 with base_time HH30.
func HourlyForecastRelease() Release {
	now := clock.Now().In(KST)
	if now.Minute() < 45 {
		now = now.Add(-time.Hour)
	}
	return Release{
		BaseDate: now.Format("20060102"),
		BaseTime: now.Format("15") + "30",
	}
}

// VillageForecastRelease returns the newest queryable village forecast
// release: the latest of the eight daily slots whose data (release + 10 min)
// is already available. Before 02:10 that is yesterday's 23:00 release.
func VillageForecastRelease() Release {
	now := clock.Now().In(KST)

	if now.Hour() < 2 || (now.Hour() == 2 && now.Minute() < 10) {
		y := now.AddDate(0, 0, -1)
		return Release{BaseDate: y.Format("20060102"), BaseTime: "2300"}
	}

	baseHour := villageReleaseHours[0]
	for i := len(villageReleaseHours) - 1; i >= 0; i-- {
		h := villageReleaseHours[i]
		if now.Hour() > h || (now.Hour() == h && now.Minute() >= 10) {
			baseHour = h
			break
		}
	}

	return Release{
		BaseDate: now.Format("20060102"),
		BaseTime: fmt.Sprintf("%02d00", baseHour),
	}
}

// MidtermAnnounceTime returns the tmFc parameter (YYYYMMDDHHmm) of the newest
// mid-term bulletin. Bulletins publish at 06:00 and 18:00 KST; before 06:00
// the latest is yesterday's 18:00.
func MidtermAnnounceTime() string {
	now := clock.Now().In(KST)

	switch {
	case now.Hour() < 6:
		return now.AddDate(0, 0, -1).Format("20060102") + "1800"
	case now.Hour() < 18:
		return now.Format("20060102") + "0600"
	default:
		return now.Format("20060102") + "1800"
	}
}

// Today returns the current date in KST as YYYYMMDD, offset by the given
// number of days. Used to filter village forecast slots by day.
func Today(offsetDays int) string {
	return clock.Now().In(KST).AddDate(0, 0, offsetDays).Format("20060102")
}
