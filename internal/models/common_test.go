// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionDesign(t *testing.T) {
	cases := []struct {
		name string
		from DesignStatus
		to   DesignStatus
		want bool
	}{
		{"in progress to finished", DesignStatusInProgress, DesignStatusFinished, true},
		{"finished to billed", DesignStatusFinished, DesignStatusBilled, true},
		{"billed to approved", DesignStatusBilled, DesignStatusApproved, true},
		{"skip billing", DesignStatusFinished, DesignStatusApproved, false},
		{"skip finish", DesignStatusInProgress, DesignStatusBilled, false},
		{"backwards", DesignStatusFinished, DesignStatusInProgress, false},
		{"approved is terminal", DesignStatusApproved, DesignStatusInProgress, false},
		{"self transition", DesignStatusInProgress, DesignStatusInProgress, false},
		{"unknown status", DesignStatus("drafting"), DesignStatusFinished, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransitionDesign(tc.from, tc.to))
		})
	}
}

func TestCanTransitionRequest(t *testing.T) {
	assert.True(t, CanTransitionRequest(RequestStatusPending, RequestStatusApproved))
	assert.True(t, CanTransitionRequest(RequestStatusPending, RequestStatusRejected))

	// Decided requests stay decided
	assert.False(t, CanTransitionRequest(RequestStatusApproved, RequestStatusRejected))
	assert.False(t, CanTransitionRequest(RequestStatusRejected, RequestStatusApproved))
	assert.False(t, CanTransitionRequest(RequestStatusApproved, RequestStatusPending))
	assert.False(t, CanTransitionRequest(RequestStatusPending, RequestStatusPending))
}

func TestValidCanvasRegion(t *testing.T) {
	valid := []CanvasRegion{
		CanvasRegionFront, CanvasRegionBack, CanvasRegionLeftSleeve,
		CanvasRegionRightSleeve, CanvasRegionCollar, CanvasRegionOther,
	}
	for _, region := range valid {
		assert.True(t, ValidCanvasRegion(region), "region %s should be valid", region)
	}

	assert.False(t, ValidCanvasRegion(CanvasRegion("")))
	assert.False(t, ValidCanvasRegion(CanvasRegion("sleeve")))
	assert.False(t, ValidCanvasRegion(CanvasRegion("FRONT")))
}

func TestValidShirtType(t *testing.T) {
	for _, st := range []ShirtType{ShirtTypeJersey, ShirtTypePolo, ShirtTypeTshirt, ShirtTypeLongSleeves} {
		assert.True(t, ValidShirtType(st), "type %s should be valid", st)
	}

	assert.False(t, ValidShirtType(ShirtType("")))
	assert.False(t, ValidShirtType(ShirtType("hoodie")))
}

func TestFabricCanvasHasDrawing(t *testing.T) {
	canvas := &FabricCanvas{}
	assert.False(t, canvas.HasDrawing())

	canvas.CanvasJSON = JSONB{}
	assert.False(t, canvas.HasDrawing())

	canvas.CanvasJSON = JSONB{"objects": []interface{}{}}
	assert.True(t, canvas.HasDrawing())
}
