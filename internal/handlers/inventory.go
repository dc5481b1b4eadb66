// internal/handlers/inventory.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teeloom/teeloom-backend/internal/i18n"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

func (h *InventoryHandler) writeInventoryError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "inventory")
	case errors.Is(err, services.ErrItemNotFound):
		utils.NotFoundResponse(c, "inventory.item")
	case errors.Is(err, services.ErrNegativeStock):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyInventoryNegative))
	case errors.Is(err, services.ErrCategoryNotEmpty), errors.Is(err, services.ErrCategoryExists):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// GET /admin/inventory/categories
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.inventoryService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// POST /admin/inventory/categories
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.inventoryService.CreateCategory(&req)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"category": category})
}

// PUT /admin/inventory/categories/:id
func (h *InventoryHandler) UpdateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	categoryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.inventoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

// DELETE /admin/inventory/categories/:id
func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	categoryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteCategory(categoryID); err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}

// GET /admin/inventory/items
func (h *InventoryHandler) ListItems(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category_id", nil)
			return
		}
		categoryID = &parsed
	}

	items, total, err := h.inventoryService.ListItems(categoryID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

// GET /admin/inventory/items/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(itemID)
	if err != nil {
		utils.NotFoundResponse(c, "inventory.item")
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// POST /admin/inventory/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.inventoryService.CreateItem(&req)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryItemCreated),
		"item":    item,
	})
}

// PUT /admin/inventory/items/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.inventoryService.UpdateItem(itemID, &req)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"item": item})
}

// DELETE /admin/inventory/items/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(itemID); err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}

// POST /admin/inventory/items/:id/adjust
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	item, err := h.inventoryService.AdjustStock(itemID, &req)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyInventoryAdjusted),
		"item":    item,
	})
}

// GET /admin/inventory/low-stock
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items, err := h.inventoryService.ListLowStock()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"items": items})
}
