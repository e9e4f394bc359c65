// Package domain models Korea Meteorological Administration (KMA) weather
// data and Naver news search results.
//
// # Data Sources
//
// Short-term forecast data comes from VilageFcstInfoService_2.0
// (apis.data.go.kr/1360000), which serves three products against grid-cell
// coordinates:
//
//	getUltraSrtNcst  ultra-short-term observation (current conditions)
//	getUltraSrtFcst  ultra-short-term forecast (next 6 hours)
//	getVilageFcst    village forecast (next 3 days)
//
// Mid-term outlooks (3-10 days) come from MidFcstInfoService/getMidFcst as a
// single plain-text bulletin per station. Warning status comes from
// WthrWrnInfoService/getPwnStatus as "o "-bulleted text blocks. News articles
// come from the Naver Open API news search endpoint.
//
// # KMA Conventions
//
// Grid coordinates:
//
//	The short-term services address locations by (nx, ny) cells in KMA's
//	Lambert Conformal Conic projection (5 km spacing, standard parallels
//	30N/60N, reference 126E 38N at cell (43, 136)). [LatLonToGrid] and
//	[GridToLatLon] implement the official closed-form conversion.
//
// Release schedules (all times KST):
//
//	observation     hourly at :40, base_time HH00
//	hourly forecast hourly at :45, base_time HH30
//	village         02:10, 05:10, 08:10, 11:10, 14:10, 17:10, 20:10, 23:10
//	mid-term        06:00 and 18:00 (tmFc, YYYYMMDDHHmm)
//
// Querying before a release lands must fall back to the previous release or
// the API answers NODATA_ERROR. See basetime.go.
//
// Category codes:
//
//	Forecast rows are (category, value) pairs keyed by fcstDate/fcstTime.
//	T1H/TMP temperature, REH humidity, RN1/PCP precipitation amount,
//	POP precipitation probability, WSD wind speed, VEC wind direction,
//	SKY sky condition (1 clear, 3 mostly cloudy, 4 overcast),
//	PTY precipitation type (0 none, 1 rain, 2 rain/snow, 3 snow, 4 shower;
//	the hourly forecast adds 5 raindrop, 6 raindrop/snow, 7 snow flurry).
//	"강수없음" ("no precipitation") is a text sentinel, not a number.
package domain
