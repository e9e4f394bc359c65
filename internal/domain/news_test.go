package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanNewsText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold markers", "<b>서울</b> 오늘 <b>한파</b>주의보", "서울 오늘 한파주의보"},
		{"entities", "&quot;역대급&quot; 한파 &lt;속보&gt;", `"역대급" 한파 <속보>`},
		{"ampersand", "눈 &amp; 비", "눈 & 비"},
		{"surrounding whitespace", "  제목  ", "제목"},
		{"plain text untouched", "내일 전국 눈", "내일 전국 눈"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanNewsText(tt.input))
		})
	}
}

func TestDedupeArticles(t *testing.T) {
	articles := []Article{
		{Title: "[속보] 서울 첫눈 관측", Link: "https://n.news.naver.com/1"},
		{Title: "서울 첫눈 관측", Link: "https://n.news.naver.com/2"},
		{Title: "<b>서울 첫눈</b> 관측 (종합)", Link: "https://n.news.naver.com/3"},
		{Title: "내일 전국 한파", Link: "https://n.news.naver.com/4"},
	}

	out := DedupeArticles(articles, 5)

	require.Len(t, out, 2)
	// First occurrence wins and its text is cleaned.
	assert.Equal(t, "[속보] 서울 첫눈 관측", out[0].Title)
	assert.Equal(t, "https://n.news.naver.com/1", out[0].Link)
	assert.Equal(t, "내일 전국 한파", out[1].Title)
}

func TestDedupeArticles_Cap(t *testing.T) {
	articles := []Article{
		{Title: "기사 하나"},
		{Title: "기사 둘"},
		{Title: "기사 셋"},
	}

	assert.Len(t, DedupeArticles(articles, 2), 2)
	assert.Len(t, DedupeArticles(articles, 0), 3) // no cap
}

func TestDedupeArticles_CleansDescriptions(t *testing.T) {
	out := DedupeArticles([]Article{
		{Title: "한파 특보", Description: "<b>한파</b>가 찾아옵니다 &quot;주의&quot;"},
	}, 1)

	require.Len(t, out, 1)
	assert.Equal(t, `한파가 찾아옵니다 "주의"`, out[0].Description)
}

func TestDedupeArticles_EmptyTitleDropped(t *testing.T) {
	out := DedupeArticles([]Article{
		{Title: "[단독]"}, // prefix-only title normalizes to empty
		{Title: "본문 있는 기사"},
	}, 5)

	require.Len(t, out, 1)
	assert.Equal(t, "본문 있는 기사", out[0].Title)
}
