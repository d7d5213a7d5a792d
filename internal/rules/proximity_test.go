package rules

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/woozymasta/roadcheck/internal/dataset"
	"github.com/woozymasta/roadcheck/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	currentID   = "urn:here::here:Topology:1"
	candidateID = "urn:here::here:Topology:2"
)

func latOffset(meters float64) float64 {
	return meters / (geo.EarthRadius * math.Pi / 180)
}

// halfSpan is exactly representable so a segment centered at 45 averages to 45.
const halfSpan = 1.0 / 8192

func segment(id string, lat float64, fc ...int) dataset.Topology {
	t := dataset.Topology{
		ID:          id,
		Coordinates: []geo.Point{{Lon: 10, Lat: lat - halfSpan}, {Lon: 10, Lat: lat + halfSpan}},
	}
	for _, v := range fc {
		t.FunctionalClass = append(t.FunctionalClass, dataset.FunctionalClass{Value: v})
	}
	return t
}

func violationFor(id string) dataset.Violation {
	return dataset.Violation{Message: "Validation error: Topology id " + id + " encountered an issue."}
}

func TestIsMotorway(t *testing.T) {
	assert.True(t, IsMotorway(segment("a", 45, 1)))
	assert.True(t, IsMotorway(segment("a", 45, 5, 2)))
	assert.False(t, IsMotorway(segment("a", 45, 3, 4)))
	assert.False(t, IsMotorway(segment("a", 45)))
}

func TestCheckProximityAlreadyMotorway(t *testing.T) {
	all := []dataset.Topology{segment(currentID, 45, 2), segment(candidateID, 45, 1)}

	got := CheckProximity(violationFor(currentID), dataset.TopologyIndex(all))
	assert.Equal(t, StatusPass, got.Status)
	assert.Nil(t, got.Centroid)
	assert.Empty(t, got.Candidates)
	assert.Equal(t, []string{
		"Checking validation for violation: 1",
		"Extracted current topology id: " + currentID,
		"Current topology is classified as a motorway (functionalClass value is 1 or 2). No further checks needed.",
	}, got.Lines)
}

func TestCheckProximityMotorwayWithin(t *testing.T) {
	candidate := segment(candidateID, 45+latOffset(15), 1)
	candidate.Roads = []json.RawMessage{json.RawMessage(`{ "id": "urn:here::here:Road:7" }`)}
	all := []dataset.Topology{segment(currentID, 45, 5), candidate}

	got := CheckProximity(violationFor(currentID), dataset.TopologyIndex(all))
	assert.Equal(t, StatusFail, got.Status)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, 0, got.Candidates[0].Index)
	assert.InDelta(t, 15, got.Candidates[0].Distance, 1e-3)
	require.Len(t, got.Lines, 4)
	assert.Equal(t, "current topology "+currentID+" & centroid: [10, 45]", got.Lines[2])
	assert.Equal(t,
		`Candidate topology 0 is within 20m and classified as motorway. Associated road(s): [{"id":"urn:here::here:Road:7"}]`,
		got.Lines[3])
}

func TestCheckProximityOutsideRadius(t *testing.T) {
	candidate := segment(candidateID, 45+latOffset(25), 1)
	candidate.Roads = []json.RawMessage{json.RawMessage(`{"id":"r"}`)}
	all := []dataset.Topology{segment(currentID, 45, 5), candidate}

	got := CheckProximity(violationFor(currentID), dataset.TopologyIndex(all))
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Empty(t, got.Candidates)
	assert.Len(t, got.Lines, 3)
	for _, line := range got.Lines {
		assert.NotContains(t, line, "Candidate topology")
	}
}

func TestCheckProximityCandidateKinds(t *testing.T) {
	all := []dataset.Topology{
		segment("urn:here::here:Topology:far", 46, 1),
		segment(currentID, 45),
		segment("urn:here::here:Topology:plain", 45+latOffset(5), 4),
		segment("urn:here::here:Topology:bare", 45+latOffset(10), 2),
		{ID: "urn:here::here:Topology:empty"},
	}

	got := CheckProximity(violationFor(currentID), dataset.TopologyIndex(all))
	assert.Equal(t, StatusFail, got.Status)
	assert.Equal(t, []string{
		"Checking validation for violation: 1",
		"Extracted current topology id: " + currentID,
		"current topology " + currentID + " & centroid: [10, 45]",
		"Candidate topology 1 is within 20m but not classified as a motorway (functionalClass value is not 1 or 2).",
		"Candidate topology 2 is within 20m and classified as motorway but has no associated road data.",
	}, got.Lines)
}

func TestCheckProximityInconclusive(t *testing.T) {
	ix := dataset.TopologyIndex([]dataset.Topology{{ID: currentID}})

	got := CheckProximity(dataset.Violation{Index: 4, Message: "nothing"}, ix)
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Equal(t, []string{
		"Checking validation for violation: 5",
		"Extracted current topology id: null",
		"No topology ID found in error message: nothing",
	}, got.Lines)

	got = CheckProximity(violationFor(candidateID), ix)
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Equal(t, "Current topology not found in the loaded data.", got.Lines[2])

	got = CheckProximity(violationFor(currentID), ix)
	assert.Equal(t, StatusInconclusive, got.Status)
	assert.Equal(t, "Current topology "+currentID+" has no coordinates.", got.Lines[2])
}

func TestCheckProximityUnreadableRoads(t *testing.T) {
	candidate := segment(candidateID, 45+latOffset(5), 1)
	candidate.Roads = []json.RawMessage{json.RawMessage(`{"id":`)}
	all := []dataset.Topology{segment(currentID, 45, 5), candidate}

	got := CheckProximity(violationFor(currentID), dataset.TopologyIndex(all))
	assert.Equal(t, StatusFail, got.Status)
	require.Len(t, got.Lines, 4)
	assert.Equal(t,
		"Candidate topology 0 is within 20m and classified as motorway. Associated road(s): 1 unreadable reference(s)",
		got.Lines[3])
}
