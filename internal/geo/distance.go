// Package geo provides great-circle distance and travel-time estimates for
// warehouse coordinates. Everything here is a stateless pure function.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the Earth's mean radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DefaultSpeedKmh is the assumed transfer speed for travel-time estimates.
const DefaultSpeedKmh = 60.0

// Distance returns the great-circle distance in kilometers between two
// points given in degrees, computed with the haversine formula. Inputs are
// not validated; callers must check coordinate ranges first.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// TravelTime formats a crude linear travel-time estimate for the given
// distance. It backs qualitative ranking and display only, not logistics
// commitments. A non-positive speed falls back to DefaultSpeedKmh.
func TravelTime(distanceKm, speedKmh float64) string {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}

	minutes := int(math.Round(distanceKm / speedKmh * 60))
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
