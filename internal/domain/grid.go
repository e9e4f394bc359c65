package domain

import "math"

// Grid is a cell in KMA's Lambert Conformal Conic forecast grid.
type Grid struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
}

// LatLon is a WGS-84 coordinate pair in decimal degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Projection constants from the official KMA conversion algorithm.
const (
	earthRadiusKM = 6371.00877 // Earth radius (km)
	gridSpacingKM = 5.0        // grid cell spacing (km)
	projLat1      = 30.0       // standard parallel 1 (degrees)
	projLat2      = 60.0       // standard parallel 2 (degrees)
	refLon        = 126.0      // reference longitude (degrees)
	refLat        = 38.0       // reference latitude (degrees)
	refX          = 43.0       // grid X of the reference point
	refY          = 136.0      // grid Y of the reference point
)

const degToRad = math.Pi / 180.0

// gridUnits is the Earth radius expressed in grid cells.
const gridUnits = earthRadiusKM / gridSpacingKM

// projParams computes the cone constant sn, scale factor sf, and the radial
// distance ro of the reference latitude. These depend only on the fixed
// projection constants.
func projParams() (sn, sf, ro float64) {
	lat1 := projLat1 * degToRad
	lat2 := projLat2 * degToRad

	sn = math.Log(math.Cos(lat1)/math.Cos(lat2)) /
		math.Log(math.Tan(math.Pi*0.25+lat2*0.5)/math.Tan(math.Pi*0.25+lat1*0.5))
	sf = math.Pow(math.Tan(math.Pi*0.25+lat1*0.5), sn) * math.Cos(lat1) / sn
	ro = gridUnits * sf / math.Pow(math.Tan(math.Pi*0.25+refLat*degToRad*0.5), sn)
	return sn, sf, ro
}

// LatLonToGrid converts a latitude/longitude to KMA grid coordinates.
// Seoul City Hall (37.5665, 126.9780) maps to (60, 127).
func LatLonToGrid(lat, lon float64) Grid {
	sn, sf, ro := projParams()

	ra := gridUnits * sf / math.Pow(math.Tan(math.Pi*0.25+lat*degToRad*0.5), sn)
	theta := (lon - refLon) * degToRad
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	return Grid{
		NX: int(ra*math.Sin(theta) + refX + 0.5),
		NY: int(ro - ra*math.Cos(theta) + refY + 0.5),
	}
}

// GridToLatLon converts KMA grid coordinates back to latitude/longitude.
// The result is the cell's registration point, so a round trip through
// [LatLonToGrid] is exact while the recovered coordinate may differ from the
// original by up to half a cell (~0.03 degrees).
func GridToLatLon(g Grid) LatLon {
	sn, sf, ro := projParams()

	dx := float64(g.NX) - refX
	dy := ro - float64(g.NY) + refY

	ra := math.Sqrt(dx*dx + dy*dy)
	if sn < 0 {
		ra = -ra
	}

	lat := 2.0*math.Atan(math.Pow(gridUnits*sf/ra, 1.0/sn)) - math.Pi*0.5

	var theta float64
	switch {
	case math.Abs(dx) <= 0:
		theta = 0
	case math.Abs(dy) <= 0:
		theta = math.Pi * 0.5
		if dx < 0 {
			theta = -theta
		}
	default:
		theta = math.Atan2(dx, dy)
	}

	lon := theta/sn + refLon*degToRad

	return LatLon{Lat: lat / degToRad, Lon: lon / degToRad}
}
