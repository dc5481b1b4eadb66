// internal/handlers/design.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type DesignHandler struct {
	designService  *services.DesignService
	canvasService  *services.CanvasService
	previewService *services.PreviewService
}

func NewDesignHandler(designService *services.DesignService, canvasService *services.CanvasService, previewService *services.PreviewService) *DesignHandler {
	return &DesignHandler{
		designService:  designService,
		canvasService:  canvasService,
		previewService: previewService,
	}
}

func (h *DesignHandler) writeDesignError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrDesignNotFound):
		utils.NotFoundResponse(c, "design")
	case errors.Is(err, services.ErrRequestNotFound):
		utils.NotFoundResponse(c, "request")
	case errors.Is(err, services.ErrDesignExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyDesignExists))
	case errors.Is(err, services.ErrDesignNotOwned):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrRequestNotApproved):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyDesignBadTransition))
	case errors.Is(err, services.ErrChecksumMismatch):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// POST /designs
func (h *DesignHandler) CreateDesign(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	design, err := h.designService.CreateDesign(designerID, &req)
	if err != nil {
		h.writeDesignError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignCreated),
		"design":  design,
	})
}

// GET /designs/:id
func (h *DesignHandler) GetDesign(c *gin.Context) {
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	design, err := h.designService.GetDesign(designID)
	if err != nil {
		utils.NotFoundResponse(c, "design")
		return
	}

	// Clients only see designs for their own requests
	if role, _ := utils.GetUserRoleFromContext(c); role == string(models.UserRoleClient) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if design.ClientID != userID {
			utils.ForbiddenResponse(c, "")
			return
		}
	}

	utils.SuccessResponse(c, gin.H{"design": design})
}

// GET /designs
func (h *DesignHandler) ListDesigns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	role, _ := utils.GetUserRoleFromContext(c)

	var (
		designs []models.Design
		total   int64
		err     error
	)
	if role == string(models.UserRoleClient) {
		designs, total, err = h.designService.ListClientDesigns(userID, params)
	} else {
		designs, total, err = h.designService.ListDesignerDesigns(userID, params)
	}
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(designs, total, params))
}

// POST /designs/:id/finish
func (h *DesignHandler) FinishDesign(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	design, err := h.designService.FinishDesign(designerID, designID)
	if err != nil {
		h.writeDesignError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignUpdated),
		"design":  design,
	})
}

// POST /designs/:id/approve
func (h *DesignHandler) ApproveDesign(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	design, err := h.designService.ApproveDesign(clientID, designID)
	if err != nil {
		h.writeDesignError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignUpdated),
		"design":  design,
	})
}

// PUT /designs/:id/deadline
func (h *DesignHandler) SetDeadline(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Deadline *time.Time `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	design, err := h.designService.SetDeadline(designerID, designID, req.Deadline)
	if err != nil {
		h.writeDesignError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignUpdated),
		"design":  design,
	})
}

// POST /designs/:id/sources
func (h *DesignHandler) UploadSourceFile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("source")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	design, err := h.designService.UploadSourceFile(designerID, designID, file, header, c.PostForm("checksum"))
	if err != nil {
		h.writeDesignError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"design":  design,
	})
}

// POST /designs/:id/previews
func (h *DesignHandler) GeneratePreviews(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("render")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	previews, err := h.previewService.GeneratePreviews(designerID, designID, file)
	if err != nil {
		if errors.Is(err, services.ErrPreviewSourceInvalid) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPreviewFailed), nil)
			return
		}
		h.writeDesignError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyPreviewGenerated),
		"previews": previews,
	})
}

// GET /designs/:id/previews
func (h *DesignHandler) ListPreviews(c *gin.Context) {
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	previews, err := h.previewService.ListPreviews(designID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"previews": previews})
}
