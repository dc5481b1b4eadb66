// internal/services/inventory_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

// InventoryService tracks production materials. Stock never goes negative:
// adjustments that would overdraw are refused, not clamped.
type InventoryService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type ItemRequest struct {
	Name         string    `json:"name" validate:"required,max=255"`
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	Unit         string    `json:"unit" validate:"required,max=20"`
	Stock        float64   `json:"stock" validate:"min=0"`
	ReorderLevel *float64  `json:"reorder_level" validate:"omitempty,min=0"`
	Description  string    `json:"description" validate:"omitempty,max=1000"`
}

type AdjustStockRequest struct {
	Delta  float64 `json:"delta" validate:"required"`
	Reason string  `json:"reason" validate:"omitempty,max=255"`
}

var (
	ErrCategoryNotFound = errors.New("inventory category not found")
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrNegativeStock    = errors.New("adjustment would make stock negative")
	ErrCategoryNotEmpty = errors.New("category still contains items")
	ErrCategoryExists   = errors.New("category with this name already exists")
)

func NewInventoryService(db *gorm.DB, notifications *NotificationService) *InventoryService {
	return &InventoryService{
		db:            db,
		notifications: notifications,
	}
}

// Categories

func (s *InventoryService) ListCategories() ([]models.InventoryCategory, error) {
	var categories []models.InventoryCategory
	if err := s.db.Preload("Items").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *InventoryService) CreateCategory(req *CategoryRequest) (*models.InventoryCategory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	var existing models.InventoryCategory
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := &models.InventoryCategory{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *InventoryService) UpdateCategory(categoryID uuid.UUID, req *CategoryRequest) (*models.InventoryCategory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.InventoryCategory
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = strings.TrimSpace(req.Description)

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes an empty category. Categories with items must be
// emptied first so no item is left dangling.
func (s *InventoryService) DeleteCategory(categoryID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.InventoryItem{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	result := s.db.Delete(&models.InventoryCategory{}, categoryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Items

func (s *InventoryService) ListItems(categoryID *uuid.UUID, params utils.PaginationParams) ([]models.InventoryItem, int64, error) {
	query := s.db.Model(&models.InventoryItem{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "stock"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var items []models.InventoryItem
	if err := query.Preload("Category").Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}

	return items, total, nil
}

func (s *InventoryService) GetItem(itemID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Preload("Category").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &item, nil
}

func (s *InventoryService) CreateItem(req *ItemRequest) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.InventoryCategory
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		return nil, ErrCategoryNotFound
	}

	item := &models.InventoryItem{
		Name:         strings.TrimSpace(req.Name),
		CategoryID:   req.CategoryID,
		Unit:         req.Unit,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) UpdateItem(itemID uuid.UUID, req *ItemRequest) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != item.CategoryID {
		var category models.InventoryCategory
		if err := s.db.First(&category, req.CategoryID).Error; err != nil {
			return nil, ErrCategoryNotFound
		}
	}

	item.Name = strings.TrimSpace(req.Name)
	item.CategoryID = req.CategoryID
	item.Unit = req.Unit
	item.Stock = req.Stock
	item.ReorderLevel = req.ReorderLevel
	item.Description = strings.TrimSpace(req.Description)

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) DeleteItem(itemID uuid.UUID) error {
	result := s.db.Delete(&models.InventoryItem{}, itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// AdjustStock applies a signed delta to an item's stock inside a row lock.
// A delta that would take stock below zero is rejected. Crossing the reorder
// level notifies the admins.
func (s *InventoryService) AdjustStock(itemID uuid.UUID, req *AdjustStockRequest) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.InventoryItem
	var wasLow bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		newStock := item.Stock + req.Delta
		if newStock < 0 {
			return ErrNegativeStock
		}

		wasLow = item.NeedsReorder()
		item.Stock = newStock

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !wasLow && item.NeedsReorder() {
		go s.notifications.NotifyAdmins(
			"inventory_low",
			"Inventory low",
			fmt.Sprintf("%s dropped to %.2f %s, below its reorder level", item.Name, item.Stock, item.Unit),
			"inventory_item", item.ID,
		)
	}

	return &item, nil
}

// ListLowStock returns every item at or below its reorder level.
func (s *InventoryService) ListLowStock() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.Preload("Category").
		Where("reorder_level IS NOT NULL AND stock <= reorder_level").
		Order("stock ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}
