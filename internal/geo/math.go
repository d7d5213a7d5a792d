package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in meters used by Haversine.
const EarthRadius = 6371000.0

// ErrEmptyCoordinates is returned when a centroid is requested for no points.
var ErrEmptyCoordinates = errors.New("empty coordinate sequence")

// Point is a WGS84 position in degrees.
type Point struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// String formats the point as a GeoJSON position.
func (p Point) String() string {
	return fmt.Sprintf("[%v, %v]", p.Lon, p.Lat)
}

// Centroid returns the arithmetic mean of longitudes and latitudes.
// It is a vertex average, not the length-weighted centroid of a line.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrEmptyCoordinates
	}

	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon
		sumLat += p.Lat
	}

	n := float64(len(points))
	return Point{Lon: sumLon / n, Lat: sumLat / n}, nil
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b Point) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
