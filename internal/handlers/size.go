// internal/handlers/size.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type SizeHandler struct {
	sizeService *services.SizeService
}

func NewSizeHandler(sizeService *services.SizeService) *SizeHandler {
	return &SizeHandler{
		sizeService: sizeService,
	}
}

// GET /sizes
func (h *SizeHandler) ListSizes(c *gin.Context) {
	category := models.SizeCategory(c.Query("category"))
	shirtType := models.ShirtType(c.Query("type"))

	sizes, err := h.sizeService.ListSizes(category, shirtType)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"sizes": sizes})
}

// GET /sizes/:id
func (h *SizeHandler) GetSize(c *gin.Context) {
	sizeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	size, err := h.sizeService.GetSize(sizeID)
	if err != nil {
		utils.NotFoundResponse(c, "size")
		return
	}

	utils.SuccessResponse(c, gin.H{"size": size})
}

// POST /admin/sizes
func (h *SizeHandler) CreateSize(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	size, err := h.sizeService.CreateSize(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySizeCreated),
		"size":    size,
	})
}

// PUT /admin/sizes/:id
func (h *SizeHandler) UpdateSize(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sizeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	size, err := h.sizeService.UpdateSize(sizeID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSizeNotFound) {
			utils.NotFoundResponse(c, "size")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"size": size})
}

// DELETE /admin/sizes/:id
func (h *SizeHandler) DeleteSize(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sizeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.sizeService.DeleteSize(sizeID); err != nil {
		if errors.Is(err, services.ErrSizeNotFound) {
			utils.NotFoundResponse(c, "size")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}
