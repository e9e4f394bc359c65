package domain

import "strings"

// noneSentinel is what KMA puts in a warning block when nothing is in effect.
const noneSentinel = "없음"

// ParseWarningBullets splits a getPwnStatus text block into individual
// bullets. Blocks use "o " as the bullet marker:
//
//	"o 강풍주의보 : 울릉도.독도\no 풍랑주의보 : 동해중부안쪽먼바다"
//
// Empty blocks and the "o 없음" sentinel yield no bullets.
func ParseWarningBullets(block string) []string {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}

	var bullets []string
	for _, part := range strings.Split(block, "o ") {
		part = strings.TrimSpace(part)
		if part == "" || part == noneSentinel {
			continue
		}
		bullets = append(bullets, part)
	}
	return bullets
}

// HasWarnings reports whether any active or preliminary warning is in effect.
func (w WarningStatus) HasWarnings() bool {
	return len(w.Active) > 0 || len(w.Preliminary) > 0
}
