// internal/handlers/request.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// POST /requests
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	request, err := h.requestService.SubmitRequest(clientID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRequestCreated),
		"request": request,
	})
}

// POST /requests/sketch
func (h *RequestHandler) UploadSketch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("sketch")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	result, err := h.requestService.UploadSketch(file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyFileUploadSuccess),
		"sketch_url": result.URL,
	})
}

// GET /requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	request, err := h.requestService.GetRequest(requestID)
	if err != nil {
		utils.NotFoundResponse(c, "request")
		return
	}

	// Clients only see their own requests
	if role, _ := utils.GetUserRoleFromContext(c); role == string(models.UserRoleClient) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if request.ClientID != userID {
			utils.ForbiddenResponse(c, "")
			return
		}
	}

	utils.SuccessResponse(c, gin.H{"request": request})
}

// GET /requests/mine
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.requestService.ListClientRequests(clientID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}

// GET /admin/requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	requests, total, err := h.requestService.ListRequests(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(requests, total, params))
}

// GET /requests/board
func (h *RequestHandler) ListRequestCards(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	cards, total, err := h.requestService.ListRequestCards(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(cards, total, params))
}

// PUT /admin/requests/:id/approve
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	requestID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	request, err := h.requestService.ApproveRequest(requestID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			utils.NotFoundResponse(c, "request")
		case errors.Is(err, services.ErrRequestNotPending):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyRequestDecided))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRequestApproved),
		"request": request,
	})
}

// PUT /admin/requests/:id/reject
func (h *RequestHandler) RejectRequest(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	requestID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	c.ShouldBindJSON(&req)

	request, err := h.requestService.RejectRequest(requestID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			utils.NotFoundResponse(c, "request")
		case errors.Is(err, services.ErrRequestNotPending):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyRequestDecided))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRequestRejected),
		"request": request,
	})
}
