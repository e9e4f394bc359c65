package domain

import "sort"

// Slot collects every category value forecast for one date+time.
type Slot struct {
	Date   string            `json:"date"` // YYYYMMDD
	Time   string            `json:"time"` // HHmm
	Values map[string]string `json:"values"`
}

// GroupSlots folds forecast rows into per-timestamp slots, sorted
// chronologically. Later duplicates of a category within one slot win, which
// matches how overlapping releases supersede each other.
func GroupSlots(values []ForecastValue) []Slot {
	byKey := make(map[string]*Slot)
	for _, v := range values {
		key := v.FcstDate + v.FcstTime
		s, ok := byKey[key]
		if !ok {
			s = &Slot{Date: v.FcstDate, Time: v.FcstTime, Values: make(map[string]string)}
			byKey[key] = s
		}
		s.Values[v.Category] = v.Value
	}

	slots := make([]Slot, 0, len(byKey))
	for _, s := range byKey {
		slots = append(slots, *s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Time < slots[j].Time
	})
	return slots
}

// FilterSlotsByDate keeps only slots for the given YYYYMMDD date.
func FilterSlotsByDate(slots []Slot, date string) []Slot {
	var out []Slot
	for _, s := range slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// CategoryMap flattens observation rows into a category → value map.
func CategoryMap(values []ForecastValue) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[v.Category] = v.Value
	}
	return m
}
