package skill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/format"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
)

// Sentinel errors the transport layers map to status codes and exit codes.
var (
	ErrUnknownSkill  = errors.New("unknown skill")
	ErrInvalidParams = errors.New("invalid parameters")
	ErrNewsDisabled  = errors.New("news search is not configured")
)

// Params carries the inputs a skill run may use. Unused fields are ignored by
// skills that do not need them.
type Params struct {
	Lat    float64 `json:"lat,omitempty"`
	Lon    float64 `json:"lon,omitempty"`
	NX     int     `json:"nx,omitempty"`
	NY     int     `json:"ny,omitempty"`
	Region string  `json:"region,omitempty"`
	Query  string  `json:"query,omitempty"`
	Days   string  `json:"days,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// Result is one completed skill run.
type Result struct {
	Skill string `json:"skill"`
	Text  string `json:"text"`
	Data  any    `json:"data,omitempty"`
}

// Runner binds the skill registry to the upstream providers and executes
// skill runs.
type Runner struct {
	registry  *Registry
	forecasts domain.ForecastProvider
	midterm   domain.MidtermProvider
	warnings  domain.WarningProvider
	news      domain.NewsProvider // nil when Naver credentials are absent
	newsLimit int
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewRunner creates a runner. news may be nil, in which case the naver-news
// skill reports ErrNewsDisabled.
func NewRunner(
	registry *Registry,
	forecasts domain.ForecastProvider,
	midterm domain.MidtermProvider,
	warnings domain.WarningProvider,
	news domain.NewsProvider,
	newsLimit int,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		registry:  registry,
		forecasts: forecasts,
		midterm:   midterm,
		warnings:  warnings,
		news:      news,
		newsLimit: newsLimit,
		metrics:   metrics,
		logger:    logger,
	}
}

// Skills lists all registered skills.
func (r *Runner) Skills() []Skill {
	return r.registry.List()
}

// Skill returns one registered skill.
func (r *Runner) Skill(name string) (Skill, bool) {
	return r.registry.Get(name)
}

// Ready reports whether the runner can serve skill runs.
func (r *Runner) Ready() bool {
	return r.registry != nil && r.registry.Len() > 0
}

// Run executes the named skill with the given parameters.
func (r *Runner) Run(ctx context.Context, name string, p Params) (Result, error) {
	if _, ok := r.registry.Get(name); !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}

	start := time.Now()
	result, err := r.dispatch(ctx, name, p)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.metrics.SkillRuns.WithLabelValues(name, outcome).Inc()
	r.metrics.SkillDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		r.logger.Error("skill run failed", "skill", name, "error", err)
		return Result{}, err
	}
	r.logger.Info("skill run completed", "skill", name, "duration", time.Since(start))
	return result, nil
}

func (r *Runner) dispatch(ctx context.Context, name string, p Params) (Result, error) {
	switch name {
	case "kma-current":
		return r.runCurrent(ctx, p)
	case "kma-hourly":
		return r.runHourly(ctx, p)
	case "kma-village":
		return r.runVillage(ctx, p)
	case "kma-midterm":
		return r.runMidterm(ctx, p)
	case "kma-warnings":
		return r.runWarnings(ctx)
	case "naver-news":
		return r.runNews(ctx, p)
	case "grid-convert":
		return r.runGridConvert(p)
	default:
		return Result{}, fmt.Errorf("%w: %q has no handler", ErrUnknownSkill, name)
	}
}

func (r *Runner) runCurrent(ctx context.Context, p Params) (Result, error) {
	g, err := requireGrid(p)
	if err != nil {
		return Result{}, err
	}

	values, err := r.forecasts.Observe(ctx, g, domain.ObservationRelease())
	if err != nil {
		return Result{}, fmt.Errorf("fetch observation: %w", err)
	}
	return Result{Skill: "kma-current", Text: format.Current(values), Data: values}, nil
}

func (r *Runner) runHourly(ctx context.Context, p Params) (Result, error) {
	g, err := requireGrid(p)
	if err != nil {
		return Result{}, err
	}

	values, err := r.forecasts.HourlyForecast(ctx, g, domain.HourlyForecastRelease())
	if err != nil {
		return Result{}, fmt.Errorf("fetch hourly forecast: %w", err)
	}
	slots := domain.GroupSlots(values)
	return Result{Skill: "kma-hourly", Text: format.Hourly(slots), Data: slots}, nil
}

func (r *Runner) runVillage(ctx context.Context, p Params) (Result, error) {
	g, err := requireGrid(p)
	if err != nil {
		return Result{}, err
	}
	days := p.Days
	if days == "" {
		days = "1"
	}
	if err := validateDays(days); err != nil {
		return Result{}, err
	}

	values, err := r.forecasts.VillageForecast(ctx, g, domain.VillageForecastRelease())
	if err != nil {
		return Result{}, fmt.Errorf("fetch village forecast: %w", err)
	}
	slots := domain.GroupSlots(values)
	return Result{Skill: "kma-village", Text: format.Village(slots, days), Data: slots}, nil
}

func (r *Runner) runMidterm(ctx context.Context, p Params) (Result, error) {
	region := p.Region
	if region == "" {
		region = "전국"
	}
	stationID, ok := domain.RegionStation(region)
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown region %q (available: %s)",
			ErrInvalidParams, region, strings.Join(domain.Regions(), ", "))
	}

	bulletin, err := r.midterm.MidtermOutlook(ctx, stationID, domain.MidtermAnnounceTime())
	if err != nil {
		return Result{}, fmt.Errorf("fetch midterm outlook: %w", err)
	}
	return Result{Skill: "kma-midterm", Text: format.Midterm(bulletin), Data: bulletin}, nil
}

func (r *Runner) runWarnings(ctx context.Context) (Result, error) {
	status, err := r.warnings.WarningStatus(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch warning status: %w", err)
	}
	return Result{Skill: "kma-warnings", Text: format.Warnings(status), Data: status}, nil
}

func (r *Runner) runNews(ctx context.Context, p Params) (Result, error) {
	if r.news == nil {
		return Result{}, ErrNewsDisabled
	}
	if p.Query == "" {
		return Result{}, fmt.Errorf("%w: query is required", ErrInvalidParams)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = r.newsLimit
	}

	articles, err := r.news.SearchNews(ctx, p.Query, limit)
	if err != nil {
		return Result{}, fmt.Errorf("search news: %w", err)
	}
	return Result{Skill: "naver-news", Text: format.News(p.Query, articles), Data: articles}, nil
}

// runGridConvert converts lat/lon to grid when coordinates are given, or grid
// to lat/lon when nx/ny are given.
func (r *Runner) runGridConvert(p Params) (Result, error) {
	switch {
	case p.Lat != 0 || p.Lon != 0:
		g := domain.LatLonToGrid(p.Lat, p.Lon)
		ll := domain.LatLon{Lat: p.Lat, Lon: p.Lon}
		return Result{
			Skill: "grid-convert",
			Text:  format.GridConversion(ll, g),
			Data:  map[string]any{"lat": p.Lat, "lon": p.Lon, "nx": g.NX, "ny": g.NY},
		}, nil
	case p.NX != 0 && p.NY != 0:
		g := domain.Grid{NX: p.NX, NY: p.NY}
		ll := domain.GridToLatLon(g)
		return Result{
			Skill: "grid-convert",
			Text:  format.GridConversion(ll, g),
			Data:  map[string]any{"lat": ll.Lat, "lon": ll.Lon, "nx": g.NX, "ny": g.NY},
		}, nil
	default:
		return Result{}, fmt.Errorf("%w: either lat/lon or nx/ny are required", ErrInvalidParams)
	}
}

func requireGrid(p Params) (domain.Grid, error) {
	if p.NX != 0 && p.NY != 0 {
		return domain.Grid{NX: p.NX, NY: p.NY}, nil
	}
	if p.Lat == 0 && p.Lon == 0 {
		return domain.Grid{}, fmt.Errorf("%w: lat and lon are required", ErrInvalidParams)
	}
	return domain.LatLonToGrid(p.Lat, p.Lon), nil
}

func validateDays(days string) error {
	if days == "all" {
		return nil
	}
	for _, c := range days {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: days must be %q or a non-negative integer", ErrInvalidParams, "all")
		}
	}
	return nil
}
