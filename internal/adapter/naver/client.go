// Package naver implements domain.NewsProvider over the Naver Open API news
// search endpoint.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search/news.json"

// overfetchFactor controls how many raw results are requested per article
// wanted, so title dedup still fills the limit.
const overfetchFactor = 4

// maxDisplay is the Naver API's per-request result cap.
const maxDisplay = 100

// Client searches Naver news. Implements domain.NewsProvider.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates a Naver news search client.
func NewClient(clientID, clientSecret string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      defaultBaseURL,
		metrics:      metrics,
		logger:       logger,
	}
}

// SearchNews fetches news for the query, deduplicates syndicated copies by
// cleaned title, and returns at most limit articles.
func (c *Client) SearchNews(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = 5
	}
	display := limit * overfetchFactor
	if display > maxDisplay {
		display = maxDisplay
	}

	params := url.Values{
		"query":   {query},
		"display": {strconv.Itoa(display)},
		"sort":    {"sim"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("transport_error", start)
		return nil, fmt.Errorf("news search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe("api_error", start)
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("naver api error: status %d: %s", resp.StatusCode, b)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		c.observe("transport_error", start)
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.observe("success", start)

	articles := make([]domain.Article, 0, len(sr.Items))
	for _, it := range sr.Items {
		articles = append(articles, domain.Article{
			Title:        it.Title,
			OriginalLink: it.OriginalLink,
			Link:         it.Link,
			Description:  it.Description,
			PublishedAt:  it.PubDate,
		})
	}

	return domain.DedupeArticles(articles, limit), nil
}

func (c *Client) observe(outcome string, start time.Time) {
	c.metrics.UpstreamRequests.WithLabelValues("naver", "news_search", outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues("naver", "news_search").Observe(time.Since(start).Seconds())
}

// Naver API response types.

type searchResponse struct {
	LastBuildDate string     `json:"lastBuildDate"`
	Total         int        `json:"total"`
	Start         int        `json:"start"`
	Display       int        `json:"display"`
	Items         []wireItem `json:"items"`
}

type wireItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}
