package rules

import (
	"testing"

	"github.com/woozymasta/roadcheck/internal/dataset"

	"github.com/stretchr/testify/assert"
)

const signID = "urn:here::here:signs:100"

func motorwaySign() dataset.Sign {
	return dataset.Sign{
		ID:           signID,
		SignType:     "MOTORWAY",
		GFRGroupName: "Motorway",
		Scores: []dataset.Score{
			{ScoreType: "EXISTENCE", Score: 0.9},
			{ScoreType: "CLASSIFICATION", Score: 0.8},
		},
	}
}

func TestCheckSign(t *testing.T) {
	violation := dataset.Violation{Index: 3, Message: "Wrong sign " + signID + " near junction"}

	tests := []struct {
		name   string
		modify func(*dataset.Sign)
		status Status
		line   string
	}{
		{
			name:   "passes all checks",
			modify: func(*dataset.Sign) {},
			status: StatusPass,
			line:   "Sign urn:here::here:signs:100 passes all checks.",
		},
		{
			name:   "wrong sign type",
			modify: func(s *dataset.Sign) { s.SignType = "SPEED_LIMIT"; s.Scores = nil },
			status: StatusFail,
			line:   `Sign urn:here::here:signs:100 fails: signType is SPEED_LIMIT (expected "MOTORWAY").`,
		},
		{
			name:   "no existence score",
			modify: func(s *dataset.Sign) { s.Scores = s.Scores[1:] },
			status: StatusFail,
			line:   "Sign urn:here::here:signs:100 fails: No EXISTENCE score found.",
		},
		{
			name:   "existence at threshold",
			modify: func(s *dataset.Sign) { s.Scores[0].Score = 0.75 },
			status: StatusFail,
			line:   "Sign urn:here::here:signs:100 fails: EXISTENCE score is 0.75 (expected > 0.75).",
		},
		{
			name:   "no classification score",
			modify: func(s *dataset.Sign) { s.Scores = s.Scores[:1] },
			status: StatusFail,
			line:   "Sign urn:here::here:signs:100 fails: No CLASSIFICATION score found.",
		},
		{
			name:   "low classification",
			modify: func(s *dataset.Sign) { s.Scores[1].Score = 0.5; s.GFRGroupName = "Urban" },
			status: StatusFail,
			line:   "Sign urn:here::here:signs:100 fails: CLASSIFICATION score is 0.5 (expected > 0.75).",
		},
		{
			name:   "wrong group",
			modify: func(s *dataset.Sign) { s.GFRGroupName = "Urban" },
			status: StatusFail,
			line:   `Sign urn:here::here:signs:100 fails: gfrGroupName is Urban (expected "Motorway").`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sign := motorwaySign()
			tt.modify(&sign)

			got := CheckSign(violation, dataset.SignIndex([]dataset.Sign{sign}))
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, []string{tt.line}, got.Lines)
			assert.Equal(t, signID, got.ID)
			assert.Equal(t, 3, got.Index)
		})
	}
}

func TestCheckSignShortCircuit(t *testing.T) {
	// Everything is wrong; only the first failing check is reported.
	sign := dataset.Sign{ID: signID, SignType: "MOTORWAY", GFRGroupName: "Urban"}
	got := CheckSign(dataset.Violation{Message: signID}, dataset.SignIndex([]dataset.Sign{sign}))

	assert.Equal(t, StatusFail, got.Status)
	assert.Len(t, got.Lines, 1)
	assert.Contains(t, got.Lines[0], "No EXISTENCE score found")
	assert.NotContains(t, got.Lines[0], "gfrGroupName")
}

func TestCheckSignInconclusive(t *testing.T) {
	signs := dataset.SignIndex([]dataset.Sign{motorwaySign()})

	got := CheckSign(dataset.Violation{Message: "no identifier here"}, signs)
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Empty(t, got.ID)
	assert.Equal(t, []string{"No sign ID found in error message: no identifier here"}, got.Lines)

	got = CheckSign(dataset.Violation{Message: "urn:here::here:signs:7"}, signs)
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Equal(t, []string{"Sign with ID urn:here::here:signs:7 not found in the signs dataset."}, got.Lines)
}
