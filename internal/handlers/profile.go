// internal/handlers/profile.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		utils.NotFoundResponse(c, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

// PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// PUT /profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.profileService.ChangePassword(userID, &req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}

// POST /profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	user, err := h.profileService.UploadAvatar(userID, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyFileUploadSuccess),
		"avatar_url": user.AvatarURL,
	})
}

// PUT /profile/contact
func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	designer, err := h.profileService.UpdateContact(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrDesignerOnly) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyProfileContactSaved),
		"designer": designer,
	})
}

// PUT /profile/portfolio
func (h *ProfileHandler) SavePortfolio(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SavePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	portfolio, err := h.profileService.SavePortfolio(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerOnly):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
		case errors.Is(err, services.ErrSkillsRequired):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPortfolioIncomplete), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyPortfolioSaved),
		"portfolio": portfolio,
	})
}

// POST /profile/portfolio/skills
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	portfolio, err := h.profileService.AddSkill(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerOnly):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
		case errors.Is(err, services.ErrSkillDuplicate):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyPortfolioSkillDuplicate))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"portfolio": portfolio})
}

// DELETE /profile/portfolio/skills
func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	skill := c.Query("skill")
	if skill == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "skill"), nil)
		return
	}

	portfolio, err := h.profileService.RemoveSkill(userID, skill)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerOnly):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
		case errors.Is(err, services.ErrSkillNotFound):
			utils.NotFoundResponse(c, "portfolio")
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"portfolio": portfolio})
}

// POST /profile/portfolio/links
func (h *ProfileHandler) AddSocialLink(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	portfolio, err := h.profileService.AddSocialLink(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerOnly):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
		case errors.Is(err, services.ErrLinkInvalid):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPortfolioLinkInvalid), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"portfolio": portfolio})
}

// DELETE /profile/portfolio/links/:id
func (h *ProfileHandler) RemoveSocialLink(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	linkID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	portfolio, err := h.profileService.RemoveSocialLink(userID, linkID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignerOnly):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
		case errors.Is(err, services.ErrLinkNotFound):
			utils.NotFoundResponse(c, "portfolio")
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"portfolio": portfolio})
}

// GET /profile/status
func (h *ProfileHandler) GetProfileStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.profileService.GetProfileStatus(userID)
	if err != nil {
		if errors.Is(err, services.ErrDesignerOnly) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyDesignerAccessDenied))
			return
		}
		utils.NotFoundResponse(c, "profile")
		return
	}

	utils.SuccessResponse(c, gin.H{"status": status})
}

// GET /designers/:id/portfolio
func (h *ProfileHandler) GetPublicPortfolio(c *gin.Context) {
	designerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	portfolio, err := h.profileService.GetPublicPortfolio(designerID)
	if err != nil {
		utils.NotFoundResponse(c, "portfolio")
		return
	}

	utils.SuccessResponse(c, gin.H{"portfolio": portfolio})
}
