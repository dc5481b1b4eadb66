// internal/handlers/canvas.go
package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type CanvasHandler struct {
	canvasService *services.CanvasService
}

func NewCanvasHandler(canvasService *services.CanvasService) *CanvasHandler {
	return &CanvasHandler{
		canvasService: canvasService,
	}
}

func (h *CanvasHandler) writeCanvasError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrDesignNotFound):
		utils.NotFoundResponse(c, "design")
	case errors.Is(err, services.ErrCanvasNotFound):
		utils.NotFoundResponse(c, "canvas")
	case errors.Is(err, services.ErrInvalidRegion):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCanvasInvalidRegion), nil)
	case errors.Is(err, services.ErrCanvasVersionStale):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCanvasVersionConflict))
	case errors.Is(err, services.ErrDesignNotOwned):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrDesignNotEditable):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// GET /designs/:id/canvases
func (h *CanvasHandler) ListCanvases(c *gin.Context) {
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	canvases, err := h.canvasService.ListCanvases(designID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"canvases": canvases})
}

// GET /designs/:id/canvases/:region
func (h *CanvasHandler) GetCanvas(c *gin.Context) {
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	region := models.CanvasRegion(c.Param("region"))

	canvas, err := h.canvasService.GetCanvas(designID, region)
	if err != nil {
		h.writeCanvasError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"canvas": canvas})
}

// POST /designs/:id/canvases/:region
func (h *CanvasHandler) EnsureCanvas(c *gin.Context) {
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	region := models.CanvasRegion(c.Param("region"))

	canvas, err := h.canvasService.EnsureCanvas(designerID, designID, region)
	if err != nil {
		h.writeCanvasError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"canvas": canvas})
}

// PUT /designs/:id/canvases/:region
func (h *CanvasHandler) SaveCanvas(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	region := models.CanvasRegion(c.Param("region"))

	var req services.SaveCanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	canvas, err := h.canvasService.SaveCanvas(designerID, designID, region, &req)
	if err != nil {
		h.writeCanvasError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCanvasSaved),
		"canvas":  canvas,
	})
}

// PUT /designs/:id/canvases/:region/thumbnail
func (h *CanvasHandler) UploadThumbnail(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	region := models.CanvasRegion(c.Param("region"))

	file, _, err := c.Request.FormFile("thumbnail")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	canvas, err := h.canvasService.SaveThumbnail(designerID, designID, region, data)
	if err != nil {
		h.writeCanvasError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"canvas":  canvas,
	})
}

// POST /designs/:id/canvases/:region/images
func (h *CanvasHandler) UploadCanvasImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}
	designID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	region := models.CanvasRegion(c.Param("region"))

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	canvas, err := h.canvasService.UploadCanvasImage(designerID, designID, region, file, header)
	if err != nil {
		h.writeCanvasError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"canvas":  canvas,
	})
}
