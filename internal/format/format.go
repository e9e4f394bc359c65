// Package format renders forecast data as human-readable Korean text. Output
// is plain text with emoji section markers, one logical line per field, in the
// shape the chat surfaces consuming these skills expect.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
)

// hourlySlotLimit caps how many forecast hours the hourly rendering shows.
const hourlySlotLimit = 6

// noPrecipitation values the API uses for "no rain recorded".
func noPrecipitation(v string) bool {
	return v == "0" || v == "강수없음"
}

// Current renders ultra-short-term observation values.
func Current(values []domain.ForecastValue) string {
	if len(values) == 0 {
		return "관측 데이터가 없습니다."
	}
	m := domain.CategoryMap(values)

	var b strings.Builder
	b.WriteString("🌤️ 현재 날씨 (초단기실황)")

	if v, ok := m["T1H"]; ok {
		fmt.Fprintf(&b, "\n🌡️  기온: %s°C", v)
	}
	if v, ok := m["REH"]; ok {
		fmt.Fprintf(&b, "\n💧 습도: %s%%", v)
	}
	if v, ok := m["RN1"]; ok {
		if noPrecipitation(v) {
			b.WriteString("\n🌧️  강수량: 0mm (1시간)")
		} else {
			fmt.Fprintf(&b, "\n🌧️  강수량: %smm (1시간)", v)
		}
	}
	if v, ok := m["WSD"]; ok {
		fmt.Fprintf(&b, "\n💨 풍속: %sm/s", v)
	}
	if v, ok := m["VEC"]; ok {
		fmt.Fprintf(&b, "\n🧭 풍향: %s (%s°)", domain.WindDirection(v), v)
	}
	if v, ok := m["PTY"]; ok && v != "0" {
		fmt.Fprintf(&b, "\n☔ 강수형태: %s", domain.PrecipitationType(v))
	}

	return b.String()
}

// Hourly renders the ultra-short-term forecast, at most six hours ahead.
func Hourly(slots []domain.Slot) string {
	if len(slots) == 0 {
		return "예보 데이터가 없습니다."
	}
	if len(slots) > hourlySlotLimit {
		slots = slots[:hourlySlotLimit]
	}

	var b strings.Builder
	b.WriteString("⏱️ 초단기예보 (6시간)")

	for _, s := range slots {
		fmt.Fprintf(&b, "\n\n⏰ %s", clockTime(s.Time))

		if v, ok := s.Values["T1H"]; ok {
			fmt.Fprintf(&b, "\n  🌡️  %s°C", v)
		}
		if v, ok := s.Values["SKY"]; ok {
			fmt.Fprintf(&b, "\n  ☁️  %s", domain.SkyCondition(v))
		}
		if v, ok := s.Values["PTY"]; ok && v != "0" {
			fmt.Fprintf(&b, "\n  ☔ %s", domain.PrecipitationType(v))
		}
		if v, ok := s.Values["RN1"]; ok && !noPrecipitation(v) {
			fmt.Fprintf(&b, "\n  🌧️  강수량: %smm", v)
		}
		if v, ok := s.Values["REH"]; ok {
			fmt.Fprintf(&b, "\n  💧 습도: %s%%", v)
		}
	}

	return b.String()
}

// Village renders the 3-day village forecast. days selects one day as an
// offset from today ("1" = tomorrow), or "all" for every available day with
// per-date headers.
func Village(slots []domain.Slot, days string) string {
	var b strings.Builder

	if days == "all" {
		b.WriteString("📆 단기예보 (전체)")
		if len(slots) == 0 {
			b.WriteString("\n\n해당 날짜의 예보 데이터가 없습니다.")
			return b.String()
		}

		currentDate := ""
		for _, s := range slots {
			if s.Date != currentDate {
				currentDate = s.Date
				fmt.Fprintf(&b, "\n\n📅 %s (%s)", isoDate(s.Date), dayLabel(s.Date))
			}
			writeVillageSlot(&b, s)
		}
		return b.String()
	}

	offset, err := strconv.Atoi(days)
	if err != nil || offset < 0 {
		offset = 1
	}
	targetDate := domain.Today(offset)
	slots = domain.FilterSlotsByDate(slots, targetDate)

	fmt.Fprintf(&b, "📆 단기예보 (%s, %s)", offsetLabel(offset), isoDate(targetDate))
	if len(slots) == 0 {
		b.WriteString("\n\n해당 날짜의 예보 데이터가 없습니다.")
		return b.String()
	}

	for _, s := range slots {
		writeVillageSlot(&b, s)
	}
	return b.String()
}

func writeVillageSlot(b *strings.Builder, s domain.Slot) {
	fmt.Fprintf(b, "\n\n⏰ %s", clockTime(s.Time))

	if v, ok := s.Values["TMP"]; ok {
		fmt.Fprintf(b, "\n  🌡️  %s°C", v)
	}
	if v, ok := s.Values["SKY"]; ok {
		fmt.Fprintf(b, "\n  ☁️  %s", domain.SkyCondition(v))
	}
	if v, ok := s.Values["PTY"]; ok && v != "0" {
		fmt.Fprintf(b, "\n  ☔ %s", domain.PrecipitationType(v))
	}
	if v, ok := s.Values["POP"]; ok {
		fmt.Fprintf(b, "\n  🌧️  강수확률: %s%%", v)
	}
	if v, ok := s.Values["PCP"]; ok && !noPrecipitation(v) {
		fmt.Fprintf(b, "\n  💧 강수량: %s", v)
	}
}

// Midterm renders the plain-text mid-term bulletin with its announce time.
func Midterm(bulletin domain.MidtermBulletin) string {
	var b strings.Builder
	b.WriteString("📅 중기예보")

	if bulletin.AnnouncedAt != "" {
		fmt.Fprintf(&b, "\n발표시각: %s", stampTime(bulletin.AnnouncedAt))
	}
	b.WriteString("\n")

	if bulletin.OutlookText != "" {
		b.WriteString("\n")
		b.WriteString(bulletin.OutlookText)
	} else {
		b.WriteString("\n예보 본문이 없습니다.")
	}
	return b.String()
}

// Warnings renders the nationwide warning summary.
func Warnings(w domain.WarningStatus) string {
	if w.AnnouncedAt == "" && !w.HasWarnings() {
		return "✅ 현재 발효 중인 기상특보가 없습니다."
	}

	var b strings.Builder
	b.WriteString("🚨 기상특보 현황")

	if w.AnnouncedAt != "" {
		fmt.Fprintf(&b, "\n발표시각: %s", stampTime(w.AnnouncedAt))
	}
	if w.EffectiveAt != "" {
		fmt.Fprintf(&b, "\n발효시각: %s", stampTime(w.EffectiveAt))
	}
	b.WriteString("\n")

	b.WriteString("\n📍 현재 발효 중인 특보")
	writeBullets(&b, w.Active)
	b.WriteString("\n")

	b.WriteString("\n⚠️  예비특보")
	writeBullets(&b, w.Preliminary)

	if len(w.Other) > 0 {
		b.WriteString("\n")
		b.WriteString("\nℹ️  기타")
		writeBullets(&b, w.Other)
	}

	return b.String()
}

func writeBullets(b *strings.Builder, lines []string) {
	if len(lines) == 0 {
		b.WriteString("\n  ✅ 없음")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(b, "\n  • %s", line)
	}
}

// News renders a numbered article list.
func News(query string, articles []domain.Article) string {
	if len(articles) == 0 {
		return fmt.Sprintf("📰 %q 관련 뉴스가 없습니다.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 %q 관련 뉴스", query)

	for i, a := range articles {
		fmt.Fprintf(&b, "\n\n%d. %s", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "\n   %s", a.Description)
		}
		if a.Link != "" {
			fmt.Fprintf(&b, "\n   🔗 %s", a.Link)
		}
		if a.PublishedAt != "" {
			fmt.Fprintf(&b, "\n   🕐 %s", a.PublishedAt)
		}
	}
	return b.String()
}

// GridConversion renders a coordinate conversion result in both directions.
func GridConversion(ll domain.LatLon, g domain.Grid) string {
	var b strings.Builder
	b.WriteString("🗺️ 좌표 변환")
	fmt.Fprintf(&b, "\n위도/경도: %.4f, %.4f", ll.Lat, ll.Lon)
	fmt.Fprintf(&b, "\n격자 (nx, ny): %d, %d", g.NX, g.NY)
	return b.String()
}

// clockTime formats HHmm as HH:MM.
func clockTime(t string) string {
	if len(t) != 4 {
		return t
	}
	return t[:2] + ":" + t[2:]
}

// isoDate formats YYYYMMDD as YYYY-MM-DD.
func isoDate(d string) string {
	if len(d) != 8 {
		return d
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}

// stampTime formats YYYYMMDDHHmm as "YYYY-MM-DD HH:MM".
func stampTime(s string) string {
	if len(s) != 12 {
		return s
	}
	return fmt.Sprintf("%s-%s-%s %s:%s", s[:4], s[4:6], s[6:8], s[8:10], s[10:12])
}

// offsetLabel names a day offset from today.
func offsetLabel(offset int) string {
	switch offset {
	case 0:
		return "오늘"
	case 1:
		return "내일"
	case 2:
		return "모레"
	case 3:
		return "글피"
	default:
		return fmt.Sprintf("%d일 후", offset)
	}
}

// dayLabel names a YYYYMMDD date relative to today in KST.
func dayLabel(date string) string {
	d, err := time.ParseInLocation("20060102", date, domain.KST)
	if err != nil {
		return date
	}
	today, err := time.ParseInLocation("20060102", domain.Today(0), domain.KST)
	if err != nil {
		return date
	}
	return offsetLabel(int(d.Sub(today).Hours() / 24))
}
