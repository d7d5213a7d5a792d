// Package dataset loads violation, sign and topology collections from GeoJSON
// and resolves entities by identifier.
package dataset

import (
	"encoding/json"

	"github.com/woozymasta/roadcheck/internal/geo"
)

// Violation is one reported issue. Message carries the referenced entity id.
type Violation struct {
	Index   int
	Message string
}

// Score is a single confidence score of a sign detection.
type Score struct {
	ScoreType string  `json:"scoreType" yaml:"scoreType"`
	Score     float64 `json:"score" yaml:"score"`
}

// Sign is a detected road sign.
type Sign struct {
	ID           string
	SignType     string
	GFRGroupName string
	Scores       []Score
}

// Score returns the first score of the given type.
func (s Sign) Score(scoreType string) (Score, bool) {
	for _, sc := range s.Scores {
		if sc.ScoreType == scoreType {
			return sc, true
		}
	}
	return Score{}, false
}

// FunctionalClass is a road classification entry.
type FunctionalClass struct {
	Value int `json:"value"`
}

// AccessFlags is one accessCharacteristics record keyed by travel mode.
// Values are kept as decoded: booleans, numbers or anything else.
type AccessFlags map[string]any

// Allowed reports whether the mode flag is boolean true or numeric 1.
func (a AccessFlags) Allowed(mode string) bool {
	switch v := a[mode].(type) {
	case bool:
		return v
	case float64:
		return v == 1
	default:
		return false
	}
}

// Topology is a road network segment. Optional attributes are nil when absent.
type Topology struct {
	ID                    string
	Coordinates           []geo.Point
	FunctionalClass       []FunctionalClass
	AccessCharacteristics []AccessFlags
	Roads                 []json.RawMessage
}
