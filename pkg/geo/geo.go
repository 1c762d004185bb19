package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const EarthRadiusMeters = 6371000.0

// MicroDegreeScale CityMap.Scale untuk map yang posisinya microdegree (import osm).
const MicroDegreeScale = 1e-6

// IsMicroDegreeScale true kalau scale map adalah microdegree.
func IsMicroDegreeScale(scale float64) bool {
	return math.Abs(scale-MicroDegreeScale) < 1e-12
}

// ToMicroDegrees derajat -> integer microdegree, format posisi location hasil import osm.
func ToMicroDegrees(deg float64) int {
	return int(math.Round(deg * 1e6))
}

func FromMicroDegrees(v int) float64 {
	return float64(v) / 1e6
}

// GreatCircleMeters jarak great-circle (meter) antara dua posisi microdegree.
func GreatCircleMeters(lat1, lon1, lat2, lon2 int) float64 {
	p1 := s2.LatLngFromDegrees(FromMicroDegrees(lat1), FromMicroDegrees(lon1))
	p2 := s2.LatLngFromDegrees(FromMicroDegrees(lat2), FromMicroDegrees(lon2))
	return AngleToMeters(p1.Distance(p2))
}

func AngleToMeters(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusMeters
}
