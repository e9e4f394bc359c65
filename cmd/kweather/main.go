// Command kweather runs one weather skill from the command line and prints
// the rendered Korean text (or raw JSON with -json).
//
// Usage:
//
//	kweather -list
//	kweather -skill kma-current -lat 37.5665 -lon 126.9780
//	kweather -skill kma-village -lat 37.5665 -lon 126.9780 -days all
//	kweather -skill kma-midterm -region 부산
//	kweather -skill naver-news -query "서울 날씨" -limit 3
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/kma-weather-skills/internal/adapter/cache"
	"github.com/couchcryptid/kma-weather-skills/internal/adapter/kma"
	"github.com/couchcryptid/kma-weather-skills/internal/adapter/naver"
	"github.com/couchcryptid/kma-weather-skills/internal/config"
	"github.com/couchcryptid/kma-weather-skills/internal/domain"
	"github.com/couchcryptid/kma-weather-skills/internal/observability"
	"github.com/couchcryptid/kma-weather-skills/internal/skill"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		skillName = flag.String("skill", "", "skill to run (see -list)")
		list      = flag.Bool("list", false, "list available skills and exit")
		lat       = flag.Float64("lat", 0, "latitude in decimal degrees")
		lon       = flag.Float64("lon", 0, "longitude in decimal degrees")
		nx        = flag.Int("nx", 0, "KMA grid x coordinate")
		ny        = flag.Int("ny", 0, "KMA grid y coordinate")
		region    = flag.String("region", "", "region name for kma-midterm (e.g. 서울)")
		query     = flag.String("query", "", "search query for naver-news")
		days      = flag.String("days", "", "day offset for kma-village (0-3 or 'all')")
		limit     = flag.Int("limit", 0, "article limit for naver-news")
		asJSON    = flag.Bool("json", false, "print the raw data as JSON instead of text")
	)
	flag.Parse()

	registry, err := skill.LoadBuiltin()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if *list {
		for _, s := range registry.List() {
			fmt.Printf("%-14s %s\n", s.Name, s.Description)
		}
		return 0
	}
	if *skillName == "" {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	logger := observability.NewLogger("error", "text")
	metrics := observability.NewMetrics()

	kmaClient := kma.NewClient(cfg.KMAServiceKey, cfg.KMATimeout, cfg.KMAPageSize, metrics, logger)

	// The SQLite cache keeps repeated CLI invocations within one release
	// window from re-fetching the same data.
	var forecasts domain.ForecastProvider = kmaClient
	if cfg.CacheEnabled && cfg.CachePath != "" {
		sc, err := cache.NewSQLiteCache(kmaClient, cfg.CachePath, cfg.CacheTTL, metrics)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		defer sc.Close()
		forecasts = sc
	}

	var news domain.NewsProvider
	if cfg.NewsEnabled() {
		news = naver.NewClient(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverTimeout, metrics, logger)
	}

	runner := skill.NewRunner(registry, forecasts, kmaClient, kmaClient, news, cfg.NewsLimit, metrics, logger)

	result, err := runner.Run(context.Background(), *skillName, skill.Params{
		Lat:    *lat,
		Lon:    *lon,
		NX:     *nx,
		NY:     *ny,
		Region: *region,
		Query:  *query,
		Days:   *days,
		Limit:  *limit,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		return 0
	}

	fmt.Println(result.Text)
	return 0
}
