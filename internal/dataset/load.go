package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/roadcheck/internal/geo"

	"github.com/rs/zerolog/log"
)

// ErrParse marks a malformed collection. It aborts the whole pipeline run.
var ErrParse = errors.New("malformed collection")

type violationProperties struct {
	ErrorMessage string `json:"Error Message"`
}

type signProperties struct {
	ID           string `json:"id"`
	SignType     string `json:"signType"`
	GFRGroupName string `json:"gfrGroupName"`
	Confidence   struct {
		SimpleScores []Score `json:"simpleScores"`
	} `json:"confidence"`
}

type topologyProperties struct {
	ID                    string            `json:"id"`
	FunctionalClass       []FunctionalClass `json:"functionalClass"`
	AccessCharacteristics []AccessFlags     `json:"accessCharacteristics"`
	Roads                 []json.RawMessage `json:"roads"`
}

// LoadViolations reads a validations FeatureCollection from path.
func LoadViolations(path string) ([]Violation, error) {
	return loadFile(path, DecodeViolations)
}

// LoadSigns reads a signs FeatureCollection from path.
func LoadSigns(path string) ([]Sign, error) {
	return loadFile(path, DecodeSigns)
}

// LoadTopology reads a topology FeatureCollection from path.
func LoadTopology(path string) ([]Topology, error) {
	return loadFile(path, DecodeTopology)
}

// DecodeViolations parses a validations FeatureCollection.
func DecodeViolations(r io.Reader) ([]Violation, error) {
	fc, err := decode[violationProperties](r)
	if err != nil {
		return nil, err
	}

	out := make([]Violation, 0, len(fc.Features))
	for i, f := range fc.Features {
		out = append(out, Violation{Index: i, Message: f.Properties.ErrorMessage})
	}
	return out, nil
}

// DecodeSigns parses a signs FeatureCollection.
func DecodeSigns(r io.Reader) ([]Sign, error) {
	fc, err := decode[signProperties](r)
	if err != nil {
		return nil, err
	}

	out := make([]Sign, 0, len(fc.Features))
	for _, f := range fc.Features {
		p := f.Properties
		out = append(out, Sign{
			ID:           p.ID,
			SignType:     p.SignType,
			GFRGroupName: p.GFRGroupName,
			Scores:       p.Confidence.SimpleScores,
		})
	}
	return out, nil
}

// DecodeTopology parses a topology FeatureCollection.
func DecodeTopology(r io.Reader) ([]Topology, error) {
	fc, err := decode[topologyProperties](r)
	if err != nil {
		return nil, err
	}

	out := make([]Topology, 0, len(fc.Features))
	for i, f := range fc.Features {
		points, err := f.Geometry.Points()
		if errors.Is(err, geo.ErrUnsupportedGeometry) {
			log.Warn().
				Int("feature", i).
				Str("topology", f.Properties.ID).
				Str("geometry", f.Geometry.Type).
				Msg("Geometry type has no vertex sequence, coordinates left empty")
			points = nil
		} else if err != nil {
			return nil, fmt.Errorf("%w: feature %d (%s): %w", ErrParse, i, f.Properties.ID, err)
		}

		p := f.Properties
		out = append(out, Topology{
			ID:                    p.ID,
			Coordinates:           points,
			FunctionalClass:       p.FunctionalClass,
			AccessCharacteristics: p.AccessCharacteristics,
			Roads:                 p.Roads,
		})
	}
	return out, nil
}

func decode[P any](r io.Reader) (geo.FeatureCollection[P], error) {
	var fc geo.FeatureCollection[P]
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return fc, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fc, nil
}

func loadFile[T any](path string, decodeFn func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	items, err := decodeFn(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Int("features", len(items)).
		Msg("Collection loaded")

	return items, nil
}
