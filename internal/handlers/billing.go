// internal/handlers/billing.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// POST /billing/invoices
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	invoice, err := h.billingService.CreateInvoice(designerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDesignNotFound):
			utils.NotFoundResponse(c, "design")
		case errors.Is(err, services.ErrDesignNotOwned):
			utils.ForbiddenResponse(c, "")
		case errors.Is(err, services.ErrDesignNotFinished), errors.Is(err, services.ErrAlreadyInvoiced):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyBillingInvoiceCreated),
		"transaction":   invoice.Transaction,
		"client_secret": invoice.ClientSecret,
		"payment_id":    invoice.PaymentID,
	})
}

// POST /billing/confirm
func (h *BillingHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	transaction, err := h.billingService.ConfirmPayment(&req)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.NotFoundResponse(c, "billing")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"transaction": transaction})
}

// GET /billing/history
func (h *BillingHandler) GetBillingHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	transactions, total, err := h.billingService.GetBillingHistory(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(transactions, total, params))
}

// GET /billing/earnings
func (h *BillingHandler) GetEarnings(c *gin.Context) {
	designerID, ok := currentUserID(c)
	if !ok {
		return
	}

	earnings, err := h.billingService.GetDesignerEarnings(designerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, earnings)
}

// POST /admin/billing/refunds
func (h *BillingHandler) ProcessRefund(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.billingService.ProcessRefund(&req); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			utils.NotFoundResponse(c, "billing")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyBillingRefunded),
	})
}
