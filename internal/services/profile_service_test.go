// internal/services/profile_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/teeloom/teeloom-backend/internal/utils"
)

func validPortfolioRequest() SavePortfolioRequest {
	return SavePortfolioRequest{
		Title:          "Streetwear prints",
		Description:    "Bold front prints and matching sleeve details",
		Specialization: "screen printing",
		Skills:         []string{"vector art"},
	}
}

func TestSavePortfolioRequestValidation(t *testing.T) {
	valid := validPortfolioRequest()
	assert.NoError(t, utils.ValidateStruct(&valid))

	noSkills := validPortfolioRequest()
	noSkills.Skills = nil
	assert.Error(t, utils.ValidateStruct(&noSkills), "missing skill set must fail validation")

	emptySkills := validPortfolioRequest()
	emptySkills.Skills = []string{}
	assert.Error(t, utils.ValidateStruct(&emptySkills), "empty skill set must fail validation")

	blankEntry := validPortfolioRequest()
	blankEntry.Skills = []string{""}
	assert.Error(t, utils.ValidateStruct(&blankEntry), "blank skill entries must fail validation")
}

func TestSavePortfolioRejectsEmptySkillSet(t *testing.T) {
	svc := &ProfileService{}

	missing := validPortfolioRequest()
	missing.Skills = nil
	_, err := svc.SavePortfolio(uuid.New(), &missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	// Whitespace-only entries survive struct validation but normalize away
	whitespace := validPortfolioRequest()
	whitespace.Skills = []string{"   ", "\t"}
	_, err = svc.SavePortfolio(uuid.New(), &whitespace)
	assert.ErrorIs(t, err, ErrSkillsRequired)
}
