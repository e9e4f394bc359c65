package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWarningBullets(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []string
	}{
		{
			"single bullet",
			"o 강풍주의보 : 울릉도.독도",
			[]string{"강풍주의보 : 울릉도.독도"},
		},
		{
			"multiple bullets",
			"o 강풍주의보 : 울릉도.독도\no 풍랑주의보 : 동해중부안쪽먼바다, 동해중부바깥먼바다",
			[]string{
				"강풍주의보 : 울릉도.독도",
				"풍랑주의보 : 동해중부안쪽먼바다, 동해중부바깥먼바다",
			},
		},
		{"none sentinel", "o 없음", nil},
		{"empty block", "", nil},
		{"whitespace only", "   \n ", nil},
		{"bullet with surrounding whitespace", "  o 대설주의보 : 강원산지  ", []string{"대설주의보 : 강원산지"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWarningBullets(tt.block))
		})
	}
}

func TestWarningStatus_HasWarnings(t *testing.T) {
	assert.False(t, WarningStatus{}.HasWarnings())
	assert.True(t, WarningStatus{Active: []string{"강풍주의보"}}.HasWarnings())
	assert.True(t, WarningStatus{Preliminary: []string{"대설예비특보"}}.HasWarnings())
	assert.False(t, WarningStatus{Other: []string{"정보사항"}}.HasWarnings())
}
