package pipeline

import "math"

const earthRadiusKm = 6371.0

// ValidCoordinate reports whether a latitude/longitude pair is a usable
// geographic position: both finite and within standard bounds. The exact
// (0,0) pair is rejected because raw sources surface absent coordinates as
// zeroes.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	return true
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates. Inputs must already be validated; NaN in means NaN out.
// The result is not rounded so callers keep full precision for sorting.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
