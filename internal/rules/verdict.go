// Package rules holds the validation rules applied to each reported violation.
// Every rule turns one violation into a Verdict; per-record problems such as a
// missing identifier or an unknown entity never surface as errors.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/woozymasta/roadcheck/internal/geo"
)

// Status is the terminal outcome of a rule for one violation.
type Status string

const (
	// StatusPass means the flagged entity is classified correctly.
	StatusPass Status = "pass"
	// StatusFail means a rule criterion was not met.
	StatusFail Status = "fail"
	// StatusInconclusive means the entity could not be identified or judged.
	StatusInconclusive Status = "inconclusive"
)

// Access is the inferred pedestrian access of a topology segment.
type Access string

const (
	// AccessEnabled means pedestrians should be allowed on the segment.
	AccessEnabled Access = "enabled"
	// AccessDisabled means pedestrians should be kept off the segment.
	AccessDisabled Access = "disabled"
	// AccessUndetermined means there was no data to infer access from.
	AccessUndetermined Access = "undetermined"
)

// Candidate is a topology segment found near the flagged one.
type Candidate struct {
	Index    int               `json:"index" yaml:"index"`
	ID       string            `json:"id" yaml:"id"`
	Distance float64           `json:"distance" yaml:"distance"`
	Motorway bool              `json:"motorway" yaml:"motorway"`
	Roads    []json.RawMessage `json:"roads,omitempty" yaml:"roads,omitempty"`
}

// MarshalYAML renders road references as YAML values instead of raw bytes.
func (c Candidate) MarshalYAML() (any, error) {
	roads := make([]any, 0, len(c.Roads))
	for i, raw := range c.Roads {
		var road any
		if err := json.Unmarshal(raw, &road); err != nil {
			return nil, fmt.Errorf("candidate %s road %d: %w", c.ID, i, err)
		}
		roads = append(roads, road)
	}

	return struct {
		Index    int     `yaml:"index"`
		ID       string  `yaml:"id"`
		Distance float64 `yaml:"distance"`
		Motorway bool    `yaml:"motorway"`
		Roads    []any   `yaml:"roads,omitempty"`
	}{c.Index, c.ID, c.Distance, c.Motorway, roads}, nil
}

// Verdict is the result of a rule for one violation. Lines are the
// diagnostic messages in emission order.
type Verdict struct {
	Index      int         `json:"index" yaml:"index"`
	Message    string      `json:"message" yaml:"message"`
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Status     Status      `json:"status" yaml:"status"`
	Access     Access      `json:"access,omitempty" yaml:"access,omitempty"`
	Centroid   *geo.Point  `json:"centroid,omitempty" yaml:"centroid,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Lines      []string    `json:"lines" yaml:"lines"`
}

func (v *Verdict) emit(format string, args ...any) {
	v.Lines = append(v.Lines, fmt.Sprintf(format, args...))
}

func (v *Verdict) finish(status Status, format string, args ...any) Verdict {
	v.emit(format, args...)
	v.Status = status
	return *v
}
