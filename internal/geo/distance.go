package geo

import "math"

const (
	metersPerKilometer = 1000.0
	earthRadiusMeters  = 6371008.8
)

// KilometersToMeters converts a radius given in kilometers to meters, the
// unit the spatial gateway expects.
func KilometersToMeters(km float64) float64 {
	return km * metersPerKilometer
}

// HaversineMeters computes the great-circle distance between two coordinate
// pairs on a spherical earth. The gateway's ellipsoidal distance is the
// authoritative one; this is a local fallback for verification.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
