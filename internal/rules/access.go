package rules

import (
	"github.com/woozymasta/roadcheck/internal/dataset"
	"github.com/woozymasta/roadcheck/internal/ident"

	"github.com/rs/zerolog/log"
)

// VehicleModes are the access flags counted by the pedestrian heuristic.
// The explicit pedestrian flag is deliberately not read.
var VehicleModes = []string{
	"auto",
	"bicycle",
	"bus",
	"carpool",
	"delivery",
	"emergencyVehicle",
	"motorcycle",
	"taxi",
	"truck",
	"throughTraffic",
}

// VehicleModeCutoff is the number of allowed vehicle modes from which a
// segment is treated as a high-speed artery closed to pedestrians.
const VehicleModeCutoff = 8

// CountVehicleModes returns how many VehicleModes are allowed by flags.
func CountVehicleModes(flags dataset.AccessFlags) int {
	n := 0
	for _, mode := range VehicleModes {
		if flags.Allowed(mode) {
			n++
		}
	}
	return n
}

// CheckAccess infers pedestrian access for the topology referenced by the violation.
func CheckAccess(v dataset.Violation, topology *dataset.Index[dataset.Topology]) Verdict {
	id, ok := ident.TopologyID(v.Message)
	if !ok {
		out := Verdict{Index: v.Index, Message: v.Message, Access: AccessUndetermined}
		return out.finish(StatusInconclusive, "No topology ID found in error message: %s", v.Message)
	}

	out := CheckAccessByID(id, topology)
	out.Index = v.Index
	out.Message = v.Message
	return out
}

// CheckAccessByID infers pedestrian access for the topology with the given id.
// Segments open to fewer than VehicleModeCutoff vehicle modes should allow
// pedestrians.
func CheckAccessByID(id string, topology *dataset.Index[dataset.Topology]) Verdict {
	out := Verdict{ID: id, Access: AccessUndetermined}

	t, ok := topology.Find(id)
	if !ok {
		return out.finish(StatusInconclusive, "No topology feature found for id %s.", id)
	}

	if len(t.AccessCharacteristics) == 0 {
		return out.finish(StatusInconclusive, "No accessCharacteristics data available for topology %s.", id)
	}

	flags := t.AccessCharacteristics[0]
	for _, mode := range VehicleModes {
		log.Debug().Str("topology", id).Str("mode", mode).Interface("value", flags[mode]).Msg("Access flag")
	}

	allowed := CountVehicleModes(flags)
	out.emit("Allowed vehicle types count (excluding pedestrian): %d", allowed)

	if allowed < VehicleModeCutoff {
		out.Access = AccessEnabled
		return out.finish(StatusPass, "Based on accessCharacteristics, pedestrian access SHOULD be ENABLED for topology %s.", id)
	}

	out.Access = AccessDisabled
	return out.finish(StatusPass, "Based on accessCharacteristics, pedestrian access SHOULD be DISABLED for topology %s.", id)
}
