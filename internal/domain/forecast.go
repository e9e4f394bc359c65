package domain

import "context"

// ForecastValue is one (category, value) row from a short-term product.
// Observation rows carry an empty FcstDate/FcstTime; their value applies to
// the release itself.
type ForecastValue struct {
	BaseDate string `json:"base_date"`
	BaseTime string `json:"base_time"`
	FcstDate string `json:"fcst_date,omitempty"`
	FcstTime string `json:"fcst_time,omitempty"`
	Category string `json:"category"`
	Value    string `json:"value"`
}

// MidtermBulletin is the plain-text mid-term outlook for one station.
type MidtermBulletin struct {
	StationID    string `json:"station_id"`
	AnnouncedAt  string `json:"announced_at"` // tmFc, YYYYMMDDHHmm
	OutlookText  string `json:"outlook_text"` // wfSv
}

// WarningStatus is the nationwide weather warning summary.
type WarningStatus struct {
	AnnouncedAt string   `json:"announced_at"`           // tmFc, YYYYMMDDHHmm
	EffectiveAt string   `json:"effective_at,omitempty"` // tmEf, YYYYMMDDHHmm
	Active      []string `json:"active"`                 // t6 bullets
	Preliminary []string `json:"preliminary"`            // t7 bullets
	Other       []string `json:"other,omitempty"`
}

// Article is one Naver news search hit after cleaning.
type Article struct {
	Title        string `json:"title"`
	OriginalLink string `json:"original_link,omitempty"`
	Link         string `json:"link"`
	Description  string `json:"description,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"`
}

// ForecastProvider fetches short-term products for a grid cell and release.
type ForecastProvider interface {
	// Observe fetches current conditions (getUltraSrtNcst).
	Observe(ctx context.Context, g Grid, rel Release) ([]ForecastValue, error)

	// HourlyForecast fetches the next ~6 hours (getUltraSrtFcst).
	HourlyForecast(ctx context.Context, g Grid, rel Release) ([]ForecastValue, error)

	// VillageForecast fetches the next 3 days (getVilageFcst).
	VillageForecast(ctx context.Context, g Grid, rel Release) ([]ForecastValue, error)
}

// MidtermProvider fetches the mid-term outlook bulletin (getMidFcst).
type MidtermProvider interface {
	MidtermOutlook(ctx context.Context, stationID, announceTime string) (MidtermBulletin, error)
}

// WarningProvider fetches the nationwide warning status (getPwnStatus).
type WarningProvider interface {
	WarningStatus(ctx context.Context) (WarningStatus, error)
}

// NewsProvider searches news articles.
type NewsProvider interface {
	SearchNews(ctx context.Context, query string, limit int) ([]Article, error)
}
