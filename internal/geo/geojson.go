// Package geo handles geographic data structures and distance calculations.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedGeometry is returned by Points for well-formed geometry types
// that have no vertex sequence of their own, such as Polygon.
var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure with typed properties.
type FeatureCollection[P any] struct {
	Type     string       `json:"type" yaml:"type"`
	Features []Feature[P] `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature[P any] struct {
	Properties P        `json:"properties" yaml:"properties"`
	Type       string   `json:"type" yaml:"type"`
	Geometry   Geometry `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature. Coordinates are kept raw
// because their nesting depends on the geometry type.
type Geometry struct {
	Type        string          `json:"type" yaml:"type"`
	Coordinates json.RawMessage `json:"coordinates" yaml:"-"`
}

// Points decodes the coordinates of Point, MultiPoint, LineString and
// MultiLineString geometries into one flat vertex sequence.
// Positions are [Lon, Lat, ...]; extra dimensions are ignored.
func (g Geometry) Points() ([]Point, error) {
	if len(g.Coordinates) == 0 || string(g.Coordinates) == "null" {
		return nil, nil
	}

	switch g.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
			return nil, fmt.Errorf("decode %s coordinates: %w", g.Type, err)
		}
		p, err := positionToPoint(pos)
		if err != nil {
			return nil, err
		}
		return []Point{p}, nil

	case "LineString", "MultiPoint":
		var positions [][]float64
		if err := json.Unmarshal(g.Coordinates, &positions); err != nil {
			return nil, fmt.Errorf("decode %s coordinates: %w", g.Type, err)
		}
		points := make([]Point, 0, len(positions))
		for _, pos := range positions {
			p, err := positionToPoint(pos)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
		}
		return points, nil

	case "MultiLineString":
		var lines [][][]float64
		if err := json.Unmarshal(g.Coordinates, &lines); err != nil {
			return nil, fmt.Errorf("decode %s coordinates: %w", g.Type, err)
		}
		var points []Point
		for _, line := range lines {
			for _, pos := range line {
				p, err := positionToPoint(pos)
				if err != nil {
					return nil, err
				}
				points = append(points, p)
			}
		}
		return points, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnsupportedGeometry, g.Type)
}

func positionToPoint(pos []float64) (Point, error) {
	if len(pos) < 2 {
		return Point{}, fmt.Errorf("position needs at least 2 values, got %d", len(pos))
	}
	return Point{Lon: pos[0], Lat: pos[1]}, nil
}
