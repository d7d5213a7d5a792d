package rules

import (
	"encoding/json"
	"fmt"

	"github.com/woozymasta/roadcheck/internal/dataset"
	"github.com/woozymasta/roadcheck/internal/geo"
	"github.com/woozymasta/roadcheck/internal/ident"

	"github.com/rs/zerolog/log"
)

// ProximityRadius is the distance in meters below which a segment counts as near.
const ProximityRadius = 20.0

// IsMotorway reports whether any functional class entry is 1 or 2.
// Segments without functional classes are not motorways.
func IsMotorway(t dataset.Topology) bool {
	for _, fc := range t.FunctionalClass {
		if fc.Value == 1 || fc.Value == 2 {
			return true
		}
	}
	return false
}

// CheckProximity looks for motorway segments lying within ProximityRadius of
// the topology segment referenced by the violation.
//
// A segment already classified as motorway passes. Otherwise every other
// segment is compared by centroid distance, and the verdict fails when a near
// motorway segment exists, since the flagged one likely belongs to it.
func CheckProximity(v dataset.Violation, topology *dataset.Index[dataset.Topology]) Verdict {
	out := Verdict{Index: v.Index, Message: v.Message}

	id, ok := ident.TopologyID(v.Message)
	out.emit("Checking validation for violation: %d", v.Index+1)
	if !ok {
		out.emit("Extracted current topology id: null")
		return out.finish(StatusInconclusive, "No topology ID found in error message: %s", v.Message)
	}
	out.ID = id
	out.emit("Extracted current topology id: %s", id)

	current, ok := topology.Find(id)
	if !ok {
		return out.finish(StatusInconclusive, "Current topology not found in the loaded data.")
	}

	if IsMotorway(current) {
		return out.finish(StatusPass, "Current topology is classified as a motorway (functionalClass value is 1 or 2). No further checks needed.")
	}

	centroid, err := geo.Centroid(current.Coordinates)
	if err != nil {
		return out.finish(StatusInconclusive, "Current topology %s has no coordinates.", id)
	}
	out.Centroid = &centroid
	out.emit("current topology %s & centroid: %s", id, centroid)

	out.Status = StatusInconclusive
	for _, c := range NearbyCandidates(current, centroid, topology.Items()) {
		out.Candidates = append(out.Candidates, c)

		switch {
		case c.Motorway && len(c.Roads) > 0:
			roads, err := json.Marshal(c.Roads)
			if err != nil {
				log.Warn().Err(err).Str("candidate", c.ID).Msg("Road references are not valid JSON")
				roads = []byte(fmt.Sprintf("%d unreadable reference(s)", len(c.Roads)))
			}
			out.emit("Candidate topology %d is within 20m and classified as motorway. Associated road(s): %s", c.Index, roads)
			out.Status = StatusFail
		case c.Motorway:
			out.emit("Candidate topology %d is within 20m and classified as motorway but has no associated road data.", c.Index)
			out.Status = StatusFail
		default:
			out.emit("Candidate topology %d is within 20m but not classified as a motorway (functionalClass value is not 1 or 2).", c.Index)
		}
	}

	return out
}

// NearbyCandidates returns the segments of all, other than current, whose
// centroid lies strictly closer than ProximityRadius to centroid. Candidate
// indexes count positions in all with current's id removed.
func NearbyCandidates(current dataset.Topology, centroid geo.Point, all []dataset.Topology) []Candidate {
	var out []Candidate

	idx := 0
	for _, t := range all {
		if t.ID == current.ID {
			continue
		}
		pos := idx
		idx++

		c, err := geo.Centroid(t.Coordinates)
		if err != nil {
			log.Warn().Str("topology", t.ID).Int("candidate", pos).Msg("Candidate skipped: no coordinates")
			continue
		}

		distance := geo.Haversine(centroid, c)
		if distance >= ProximityRadius {
			continue
		}

		log.Debug().
			Str("topology", current.ID).
			Str("candidate", t.ID).
			Float64("distance", distance).
			Msg("Candidate within radius")

		out = append(out, Candidate{
			Index:    pos,
			ID:       t.ID,
			Distance: distance,
			Motorway: IsMotorway(t),
			Roads:    t.Roads,
		})
	}

	return out
}
