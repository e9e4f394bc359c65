package naver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

func testClient(baseURL string) *Client {
	return &Client{
		clientID:     "test-id",
		clientSecret: "test-secret",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		baseURL:      baseURL,
		metrics:      observability.NewMetricsForTesting(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_SearchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "test-secret", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "서울 날씨", r.URL.Query().Get("query"))
		assert.Equal(t, "20", r.URL.Query().Get("display"))
		assert.Equal(t, "sim", r.URL.Query().Get("sort"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"lastBuildDate":"Sun, 01 Feb 2026 14:00:00 +0900",
			"total":3,"start":1,"display":3,
			"items":[
				{"title":"[속보] <b>서울</b> 한파주의보","originallink":"https://news.example.com/1",
				 "link":"https://n.news.naver.com/1","description":"<b>서울</b>에 한파주의보가 발효됐다.",
				 "pubDate":"Sun, 01 Feb 2026 13:40:00 +0900"},
				{"title":"<b>서울</b> 한파주의보 (종합)","link":"https://n.news.naver.com/2",
				 "description":"중복 기사"},
				{"title":"내일 전국 대설","link":"https://n.news.naver.com/3","description":"전국에 눈"}
			]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	articles, err := c.SearchNews(context.Background(), "서울 날씨", 5)
	require.NoError(t, err)

	require.Len(t, articles, 2) // syndicated duplicate dropped
	assert.Equal(t, "[속보] 서울 한파주의보", articles[0].Title)
	assert.Equal(t, "서울에 한파주의보가 발효됐다.", articles[0].Description)
	assert.Equal(t, "https://n.news.naver.com/1", articles[0].Link)
	assert.Equal(t, "https://news.example.com/1", articles[0].OriginalLink)
	assert.Equal(t, "내일 전국 대설", articles[1].Title)
}

func TestClient_SearchNews_LimitAndDisplayCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 30 * overfetchFactor exceeds the API cap of 100.
		assert.Equal(t, "100", r.URL.Query().Get("display"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"title":"기사 1","link":"l1"},
			{"title":"기사 2","link":"l2"},
			{"title":"기사 3","link":"l3"}
		]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	articles, err := c.SearchNews(context.Background(), "날씨", 30)
	require.NoError(t, err)
	assert.Len(t, articles, 3)
}

func TestClient_SearchNews_DefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("display"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	articles, err := c.SearchNews(context.Background(), "날씨", 0)
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestClient_SearchNews_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errorMessage":"Not Authorized","errorCode":"024"}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.SearchNews(context.Background(), "날씨", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_SearchNews_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.SearchNews(context.Background(), "날씨", 5)
	require.Error(t, err)
}
