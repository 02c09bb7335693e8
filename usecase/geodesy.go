package usecase

import (
	"math"

	"solar-site-area/model"
)

// EarthRadius is the mean Earth radius in meters. The same radius feeds
// every geodesic helper so measured areas and constructed distances stay
// mutually consistent.
const EarthRadius = 6371008.8

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// RingArea computes the geodesic area of a ring in m² using the
// spherical-excess sum over edge trapezoids (Chamberlain & Duquette).
// Winding order does not matter; the result is always non-negative.
// A ring with fewer than 3 distinct vertices measures 0.
func RingArea(ring model.Ring) float64 {
	coords := ring.Coordinates
	n := len(coords)
	if n > 1 && coords[0] == coords[n-1] {
		coords = coords[:n-1]
		n--
	}
	if n < 3 {
		return 0
	}

	total := 0.0
	for i := 0; i < n; i++ {
		p1 := coords[i]
		p2 := coords[(i+1)%n]
		total += degToRad(p2.Longitude-p1.Longitude) *
			(2 + math.Sin(degToRad(p1.Latitude)) + math.Sin(degToRad(p2.Latitude)))
	}

	return math.Abs(total * EarthRadius * EarthRadius / 2)
}

// PolygonArea measures a polygon in m²: shell area minus hole areas,
// floored at zero in case of degenerate hole input.
func PolygonArea(polygon model.Polygon) float64 {
	area := RingArea(polygon.Shell)
	for _, hole := range polygon.Holes {
		area -= RingArea(hole)
	}
	return math.Max(0, area)
}

// RegionArea measures a region in m². Empty regions measure 0; single and
// multi regions sum their polygons.
func RegionArea(region model.Region) float64 {
	if region.Empty() {
		return 0
	}
	area := 0.0
	for _, polygon := range region.Polygons {
		area += PolygonArea(polygon)
	}
	return area
}

// HaversineDistance returns the great-circle distance in meters between
// two points.
func HaversineDistance(p1, p2 model.Point) float64 {
	lat1Rad := degToRad(p1.Latitude)
	lat2Rad := degToRad(p2.Latitude)
	dlat := lat2Rad - lat1Rad
	dlon := degToRad(p2.Longitude - p1.Longitude)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// DestinationPoint returns the point reached by travelling distance meters
// from origin along the given compass bearing (degrees, north = 0,
// clockwise).
func DestinationPoint(origin model.Point, distance, bearing float64) model.Point {
	latRad := degToRad(origin.Latitude)
	lonRad := degToRad(origin.Longitude)
	bearingRad := degToRad(bearing)
	angular := distance / EarthRadius

	destLatRad := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))

	destLonRad := lonRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(destLatRad))

	return model.Point{
		Latitude:  radToDeg(destLatRad),
		Longitude: radToDeg(destLonRad),
	}
}
