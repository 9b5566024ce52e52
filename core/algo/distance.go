package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/nestscore/schema"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// GreatCircleDistanceKm returns the haversine distance between two points.
func GreatCircleDistanceKm(a, b schema.Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	h = clamp(h, 0, 1) // rounding can push antipodal points past 1
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FormatDistance renders a distance as metres below 1 km and as kilometres with
// one decimal otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", roundHalfUp(km*1000))
	}
	return fmt.Sprintf("%.1fkm", km)
}
