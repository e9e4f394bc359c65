package kma

import (
	"context"
	"encoding/json"
	"errors"
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

// Default base URLs of the three KMA OpenAPI services.
const (
	defaultVillageBaseURL = "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"
	defaultMidtermBaseURL = "https://apis.data.go.kr/1360000/MidFcstInfoService"
	defaultWarningBaseURL = "https://apis.data.go.kr/1360000/WthrWrnInfoService"
)

// retryBackoff is the pause before the single retry of a retryable failure.
const retryBackoff = 300 * time.Millisecond

// Client talks to the KMA OpenAPI services. It implements
// domain.ForecastProvider, domain.MidtermProvider, and domain.WarningProvider.
type Client struct {
	serviceKey string
	httpClient *http.Client
	pageSize   int
	metrics    *observability.Metrics
	logger     *slog.Logger

	villageBaseURL string
	midtermBaseURL string
	warningBaseURL string
}

// NewClient creates a KMA API client. pageSize bounds numOfRows per request;
// larger result sets are paginated transparently.
func NewClient(serviceKey string, timeout time.Duration, pageSize int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   pageSize,
		metrics:    metrics,
		logger:     logger,

		villageBaseURL: defaultVillageBaseURL,
		midtermBaseURL: defaultMidtermBaseURL,
		warningBaseURL: defaultWarningBaseURL,
	}
}

// Observe fetches current conditions via getUltraSrtNcst.
func (c *Client) Observe(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	items, err := c.fetchRows(ctx, c.villageBaseURL, "getUltraSrtNcst", gridParams(g, rel))
	if err != nil {
		return nil, err
	}
	return toValues(items, true), nil
}

// HourlyForecast fetches the ultra-short-term forecast via getUltraSrtFcst.
func (c *Client) HourlyForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	items, err := c.fetchRows(ctx, c.villageBaseURL, "getUltraSrtFcst", gridParams(g, rel))
	if err != nil {
		return nil, err
	}
	return toValues(items, false), nil
}

// VillageForecast fetches the 3-day village forecast via getVilageFcst.
func (c *Client) VillageForecast(ctx context.Context, g domain.Grid, rel domain.Release) ([]domain.ForecastValue, error) {
	items, err := c.fetchRows(ctx, c.villageBaseURL, "getVilageFcst", gridParams(g, rel))
	if err != nil {
		return nil, err
	}
	return toValues(items, false), nil
}

// MidtermOutlook fetches the plain-text mid-term bulletin via getMidFcst.
func (c *Client) MidtermOutlook(ctx context.Context, stationID, announceTime string) (domain.MidtermBulletin, error) {
	params := url.Values{
		"stnId": {stationID},
		"tmFc":  {announceTime},
	}

	body, err := c.getBody(ctx, c.midtermBaseURL, "getMidFcst", params, 10)
	if err != nil {
		return domain.MidtermBulletin{}, err
	}
	if len(body.Items.Item) == 0 {
		return domain.MidtermBulletin{}, fmt.Errorf("getMidFcst: empty response for station %s", stationID)
	}

	item := body.Items.Item[0]
	b := domain.MidtermBulletin{
		StationID:   stationID,
		AnnouncedAt: string(item.TmFc),
		OutlookText: item.WfSv,
	}
	if b.AnnouncedAt == "" {
		b.AnnouncedAt = announceTime
	}
	return b, nil
}

// WarningStatus fetches the nationwide warning summary via getPwnStatus.
func (c *Client) WarningStatus(ctx context.Context) (domain.WarningStatus, error) {
	body, err := c.getBody(ctx, c.warningBaseURL, "getPwnStatus", url.Values{}, 10)
	if err != nil {
		return domain.WarningStatus{}, err
	}
	if len(body.Items.Item) == 0 {
		// No item means no bulletin is in effect at all.
		return domain.WarningStatus{}, nil
	}

	item := body.Items.Item[0]
	return domain.WarningStatus{
		AnnouncedAt: padAnnounceTime(string(item.TmFc)),
		EffectiveAt: padAnnounceTime(string(item.TmEf)),
		Active:      domain.ParseWarningBullets(item.T6),
		Preliminary: domain.ParseWarningBullets(item.T7),
		Other:       domain.ParseWarningBullets(item.Other),
	}, nil
}

// gridParams builds the common query for the short-term forecast endpoints.
func gridParams(g domain.Grid, rel domain.Release) url.Values {
	return url.Values{
		"base_date": {rel.BaseDate},
		"base_time": {rel.BaseTime},
		"nx":        {strconv.Itoa(g.NX)},
		"ny":        {strconv.Itoa(g.NY)},
	}
}

// toValues maps wire rows to domain values. Observation rows carry their
// value in obsrValue, forecast rows in fcstValue.
func toValues(items []wireItem, observation bool) []domain.ForecastValue {
	values := make([]domain.ForecastValue, 0, len(items))
	for _, it := range items {
		v := domain.ForecastValue{
			BaseDate: it.BaseDate,
			BaseTime: it.BaseTime,
			Category: it.Category,
		}
		if observation {
			v.Value = it.ObsrValue
		} else {
			v.FcstDate = it.FcstDate
			v.FcstTime = it.FcstTime
			v.Value = it.FcstValue
		}
		values = append(values, v)
	}
	return values
}

// padAnnounceTime left-pads a tmFc/tmEf value to the full YYYYMMDDHHmm width.
// The warning service returns these as numbers, which drops no digits today
// but keeps the contract explicit.
func padAnnounceTime(s string) string {
	if s == "" {
		return ""
	}
	for len(s) < 12 {
		s = "0" + s
	}
	return s
}

// fetchRows fetches all pages of a forecast endpoint and merges the rows.
func (c *Client) fetchRows(ctx context.Context, baseURL, endpoint string, params url.Values) ([]wireItem, error) {
	var all []wireItem
	for page := 1; ; page++ {
		params.Set("pageNo", strconv.Itoa(page))

		body, err := c.getBody(ctx, baseURL, endpoint, params, c.pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, body.Items.Item...)
		if len(body.Items.Item) == 0 || len(all) >= body.TotalCount {
			return all, nil
		}
	}
}

// getBody performs one GET against endpoint, retrying once on retryable
// failures (transport errors, gateway timeout codes).
func (c *Client) getBody(ctx context.Context, baseURL, endpoint string, params url.Values, numRows int) (*wireBody, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying kma request", "endpoint", endpoint, "error", lastErr)
			if !sleepWithContext(ctx, retryBackoff) {
				return nil, ctx.Err()
			}
		}

		body, err := c.getOnce(ctx, baseURL, endpoint, params, numRows)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, baseURL, endpoint string, params url.Values, numRows int) (*wireBody, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("serviceKey", c.serviceKey)
	q.Set("dataType", "JSON")
	q.Set("numOfRows", strconv.Itoa(numRows))
	if q.Get("pageNo") == "" {
		q.Set("pageNo", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "transport_error", start)
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.observe(endpoint, "transport_error", start)
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", endpoint, resp.StatusCode, b)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.observe(endpoint, "transport_error", start)
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}

	if code := env.Response.Header.ResultCode; code != codeOK {
		c.observe(endpoint, "api_error", start)
		return nil, &APIError{Code: code, Message: env.Response.Header.ResultMsg}
	}

	c.observe(endpoint, "success", start)
	return &env.Response.Body, nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	c.metrics.UpstreamRequests.WithLabelValues("kma", endpoint, outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues("kma", endpoint).Observe(time.Since(start).Seconds())
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
