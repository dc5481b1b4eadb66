// internal/services/request_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/teeloom/teeloom-backend/internal/models"
)

func TestBuildRequestCard(t *testing.T) {
	submitted := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)

	request := &models.DesignRequest{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: submitted},
		Title:     "Summer league jersey",
		Client: models.User{
			FirstName: "Mei",
			LastName:  "Lin",
		},
		Size:       models.ShirtSize{SizeLabel: "M"},
		TshirtType: models.ShirtTypeJersey,
		Status:     models.RequestStatusApproved,
		SketchURL:  "https://cdn.example.com/sketch.png",
	}

	card := BuildRequestCard(request)

	assert.Equal(t, request.ID, card.ID)
	assert.Equal(t, "Summer league jersey", card.Title)
	assert.Equal(t, "Mei Lin", card.ClientName)
	assert.Equal(t, "M", card.SizeLabel)
	assert.Equal(t, models.ShirtTypeJersey, card.TshirtType)
	assert.Equal(t, models.RequestStatusApproved, card.Status)
	assert.Equal(t, "https://cdn.example.com/sketch.png", card.SketchURL)
	assert.Equal(t, "2026-03-14", card.SubmittedAt)

	// No design yet: the board shows the unassigned placeholder
	assert.Equal(t, "Unassigned", card.DesignerName)
	assert.Empty(t, card.DesignStatus)
}

func TestBuildRequestCardWithDesign(t *testing.T) {
	request := &models.DesignRequest{
		Title:  "Polo rework",
		Status: models.RequestStatusApproved,
		Design: &models.Design{
			Status: models.DesignStatusInProgress,
			Designer: models.User{
				FirstName: "Jun",
				LastName:  "Park",
			},
		},
	}

	card := BuildRequestCard(request)
	assert.Equal(t, "Jun Park", card.DesignerName)
	assert.Equal(t, models.DesignStatusInProgress, card.DesignStatus)
}

func TestBuildRequestCardBlankDesignerName(t *testing.T) {
	// A design whose designer relation was not loaded renders a blank name;
	// the card keeps the placeholder instead of showing an empty string.
	request := &models.DesignRequest{
		Title:  "Kids tee",
		Status: models.RequestStatusApproved,
		Design: &models.Design{Status: models.DesignStatusFinished},
	}

	card := BuildRequestCard(request)
	assert.Equal(t, "Unassigned", card.DesignerName)
	assert.Equal(t, models.DesignStatusFinished, card.DesignStatus)
}
