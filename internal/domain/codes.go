package domain

import (
	"sort"
	"strconv"
)

// precipitationTypes maps PTY codes to Korean labels. Codes 5-7 only occur in
// the ultra-short-term forecast product.
var precipitationTypes = map[string]string{
	"0": "없음",
	"1": "비",
	"2": "비/눈",
	"3": "눈",
	"4": "소나기",
	"5": "빗방울",
	"6": "빗방울눈날림",
	"7": "눈날림",
}

// skyConditions maps SKY codes to Korean labels. Codes 2 is unused upstream.
var skyConditions = map[string]string{
	"1": "맑음",
	"3": "구름많음",
	"4": "흐림",
}

// PrecipitationType translates a PTY category value. Unknown codes come back
// as "알 수 없음" rather than an error so formatters degrade gracefully on new
// upstream codes.
func PrecipitationType(code string) string {
	if label, ok := precipitationTypes[code]; ok {
		return label
	}
	return "알 수 없음"
}

// SkyCondition translates a SKY category value.
func SkyCondition(code string) string {
	if label, ok := skyConditions[code]; ok {
		return label
	}
	return "알 수 없음"
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection converts a VEC value (degrees, as the API's string) to an
// 8-point compass label. Returns "N/A" when the value is not numeric.
func WindDirection(degrees string) string {
	deg, err := strconv.ParseFloat(degrees, 64)
	if err != nil {
		return "N/A"
	}
	idx := int((deg+22.5)/45) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}

// stationCodes maps region names to getMidFcst stnId values. Several regions
// share one station because KMA issues a single bulletin per province group.
var stationCodes = map[string]string{
	"전국": "108",
	"서울": "109",
	"경기": "109",
	"인천": "109",
	"강원": "105",
	"충북": "131",
	"충남": "133",
	"대전": "133",
	"세종": "133",
	"전북": "146",
	"광주": "156",
	"전남": "156",
	"대구": "143",
	"경북": "143",
	"부산": "159",
	"울산": "159",
	"경남": "159",
	"제주": "184",
}

// RegionStation resolves a Korean region name to its mid-term station ID.
func RegionStation(region string) (string, bool) {
	id, ok := stationCodes[region]
	return id, ok
}

// Regions returns all region names accepted by RegionStation, sorted.
func Regions() []string {
	names := make([]string, 0, len(stationCodes))
	for name := range stationCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
