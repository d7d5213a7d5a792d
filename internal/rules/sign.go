package rules

import (
	"github.com/woozymasta/roadcheck/internal/dataset"
	"github.com/woozymasta/roadcheck/internal/ident"

	"github.com/rs/zerolog/log"
)

const (
	// ScoreThreshold must be strictly exceeded by confidence scores.
	ScoreThreshold = 0.75

	// MotorwaySignType is the only accepted sign type.
	MotorwaySignType = "MOTORWAY"
	// MotorwayGroup is the only accepted GFR group name.
	MotorwayGroup = "Motorway"

	// ScoreExistence rates how likely the sign exists.
	ScoreExistence = "EXISTENCE"
	// ScoreClassification rates how likely the sign type is right.
	ScoreClassification = "CLASSIFICATION"
)

// CheckSign verifies that the sign referenced by the violation is a confident
// motorway sign. Checks run in a fixed order and stop at the first failure.
func CheckSign(v dataset.Violation, signs *dataset.Index[dataset.Sign]) Verdict {
	out := Verdict{Index: v.Index, Message: v.Message}

	id, ok := ident.SignID(v.Message)
	if !ok {
		return out.finish(StatusInconclusive, "No sign ID found in error message: %s", v.Message)
	}
	out.ID = id

	sign, ok := signs.Find(id)
	if !ok {
		return out.finish(StatusInconclusive, "Sign with ID %s not found in the signs dataset.", id)
	}

	if sign.SignType != MotorwaySignType {
		return out.finish(StatusFail, `Sign %s fails: signType is %s (expected "MOTORWAY").`, id, sign.SignType)
	}

	existence, ok := sign.Score(ScoreExistence)
	if !ok {
		return out.finish(StatusFail, "Sign %s fails: No EXISTENCE score found.", id)
	}
	if existence.Score <= ScoreThreshold {
		return out.finish(StatusFail, "Sign %s fails: EXISTENCE score is %v (expected > 0.75).", id, existence.Score)
	}

	classification, ok := sign.Score(ScoreClassification)
	if !ok {
		return out.finish(StatusFail, "Sign %s fails: No CLASSIFICATION score found.", id)
	}
	if classification.Score <= ScoreThreshold {
		return out.finish(StatusFail, "Sign %s fails: CLASSIFICATION score is %v (expected > 0.75).", id, classification.Score)
	}

	if sign.GFRGroupName != MotorwayGroup {
		return out.finish(StatusFail, `Sign %s fails: gfrGroupName is %s (expected "Motorway").`, id, sign.GFRGroupName)
	}

	log.Trace().Str("sign", id).Float64("existence", existence.Score).Float64("classification", classification.Score).Msg("Sign passed")

	return out.finish(StatusPass, "Sign %s passes all checks.", id)
}
