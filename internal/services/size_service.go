// internal/services/size_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

// SizeService manages the garment size catalog. Reads are open to all
// authenticated users; writes are admin-only (enforced at the router).
type SizeService struct {
	db *gorm.DB
}

type SizeRequest struct {
	SizeLabel    string              `json:"size_label" validate:"required,max=20"`
	Width        float64             `json:"width" validate:"required,gt=0"`
	Height       float64             `json:"height" validate:"required,gt=0"`
	Type         models.ShirtType    `json:"type" validate:"required,oneof=jersey polo tshirt long_sleeves"`
	SleeveWidth  *float64            `json:"sleeve_width" validate:"omitempty,gt=0"`
	SleeveLength *float64            `json:"sleeve_length" validate:"omitempty,gt=0"`
	Category     models.SizeCategory `json:"category" validate:"required,oneof=kids adult"`
}

var ErrSizeNotFound = errors.New("shirt size not found")

func NewSizeService(db *gorm.DB) *SizeService {
	return &SizeService{db: db}
}

// ListSizes returns catalog entries, optionally filtered by category and
// shirt type.
func (s *SizeService) ListSizes(category models.SizeCategory, shirtType models.ShirtType) ([]models.ShirtSize, error) {
	query := s.db.Model(&models.ShirtSize{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if shirtType != "" {
		query = query.Where("type = ?", shirtType)
	}

	var sizes []models.ShirtSize
	if err := query.Order("category ASC, width ASC").Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

func (s *SizeService) GetSize(sizeID uuid.UUID) (*models.ShirtSize, error) {
	var size models.ShirtSize
	if err := s.db.First(&size, sizeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &size, nil
}

func (s *SizeService) CreateSize(req *SizeRequest) (*models.ShirtSize, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	size := &models.ShirtSize{
		SizeLabel:    req.SizeLabel,
		Width:        req.Width,
		Height:       req.Height,
		Type:         req.Type,
		SleeveWidth:  req.SleeveWidth,
		SleeveLength: req.SleeveLength,
		Category:     req.Category,
	}
	if err := s.db.Create(size).Error; err != nil {
		return nil, fmt.Errorf("failed to create size: %w", err)
	}
	return size, nil
}

func (s *SizeService) UpdateSize(sizeID uuid.UUID, req *SizeRequest) (*models.ShirtSize, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	size, err := s.GetSize(sizeID)
	if err != nil {
		return nil, err
	}

	size.SizeLabel = req.SizeLabel
	size.Width = req.Width
	size.Height = req.Height
	size.Type = req.Type
	size.SleeveWidth = req.SleeveWidth
	size.SleeveLength = req.SleeveLength
	size.Category = req.Category

	if err := s.db.Save(size).Error; err != nil {
		return nil, fmt.Errorf("failed to update size: %w", err)
	}
	return size, nil
}

// DeleteSize soft-deletes a catalog entry. Entries referenced by an existing
// request stay resolvable through the soft-deleted row.
func (s *SizeService) DeleteSize(sizeID uuid.UUID) error {
	result := s.db.Delete(&models.ShirtSize{}, sizeID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete size: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSizeNotFound
	}
	return nil
}
