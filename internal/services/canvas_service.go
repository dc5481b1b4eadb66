// internal/services/canvas_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

// CanvasService manages the per-region drawing surfaces of a design. Saves
// are guarded by optimistic versioning so two open editors cannot silently
// overwrite each other.
type CanvasService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
}

type SaveCanvasRequest struct {
	CanvasJSON      map[string]interface{} `json:"canvas_json" validate:"required"`
	ExpectedVersion int                    `json:"expected_version" validate:"min=0"`
}

var (
	ErrCanvasNotFound     = errors.New("canvas not found")
	ErrInvalidRegion      = errors.New("invalid canvas region")
	ErrCanvasVersionStale = errors.New("canvas was modified by another session")
	ErrDesignNotEditable  = errors.New("design is no longer editable")
)

func NewCanvasService(db *gorm.DB, cfg *config.Config, storage *StorageService) *CanvasService {
	return &CanvasService{
		db:      db,
		cfg:     cfg,
		storage: storage,
	}
}

// EnsureCanvas returns the canvas for (design, region), creating an empty row
// on first access. The composite unique index makes concurrent first access
// safe: the loser of the race re-reads the winner's row.
func (s *CanvasService) EnsureCanvas(designerID, designID uuid.UUID, region models.CanvasRegion) (*models.FabricCanvas, error) {
	if !models.ValidCanvasRegion(region) {
		return nil, ErrInvalidRegion
	}

	if _, err := s.editableDesign(designerID, designID); err != nil {
		return nil, err
	}

	var canvas models.FabricCanvas
	err := s.db.Where("design_id = ? AND region = ?", designID, region).First(&canvas).Error
	if err == nil {
		return &canvas, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	canvas = models.FabricCanvas{
		DesignID: designID,
		Region:   region,
		Version:  0,
	}
	if err := s.db.Create(&canvas).Error; err != nil {
		// Lost a creation race, the row exists now
		var existing models.FabricCanvas
		if ferr := s.db.Where("design_id = ? AND region = ?", designID, region).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	return &canvas, nil
}

// SaveCanvas persists the serialized drawing state. The caller sends the
// version it loaded; a mismatch means another session saved in between and
// the write is refused.
func (s *CanvasService) SaveCanvas(designerID, designID uuid.UUID, region models.CanvasRegion, req *SaveCanvasRequest) (*models.FabricCanvas, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !models.ValidCanvasRegion(region) {
		return nil, ErrInvalidRegion
	}

	if _, err := s.editableDesign(designerID, designID); err != nil {
		return nil, err
	}

	var canvas models.FabricCanvas
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("design_id = ? AND region = ?", designID, region).
			First(&canvas).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCanvasNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if canvas.Version != req.ExpectedVersion {
			return ErrCanvasVersionStale
		}

		canvas.CanvasJSON = models.JSONB(req.CanvasJSON)
		canvas.Version++

		if err := tx.Save(&canvas).Error; err != nil {
			return fmt.Errorf("failed to save canvas: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &canvas, nil
}

// ListCanvases enumerates the regions of a design that have canvas rows.
func (s *CanvasService) ListCanvases(designID uuid.UUID) ([]models.FabricCanvas, error) {
	var canvases []models.FabricCanvas
	if err := s.db.Where("design_id = ?", designID).Order("region ASC").Find(&canvases).Error; err != nil {
		return nil, fmt.Errorf("failed to list canvases: %w", err)
	}
	return canvases, nil
}

func (s *CanvasService) GetCanvas(designID uuid.UUID, region models.CanvasRegion) (*models.FabricCanvas, error) {
	if !models.ValidCanvasRegion(region) {
		return nil, ErrInvalidRegion
	}

	var canvas models.FabricCanvas
	err := s.db.Where("design_id = ? AND region = ?", designID, region).First(&canvas).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanvasNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &canvas, nil
}

// UploadCanvasImage stores an image asset used within the canvas (uploaded
// artwork placed on the drawing surface) and records its URL.
func (s *CanvasService) UploadCanvasImage(designerID, designID uuid.UUID, region models.CanvasRegion, file multipart.File, header *multipart.FileHeader) (*models.FabricCanvas, error) {
	canvas, err := s.EnsureCanvas(designerID, designID, region)
	if err != nil {
		return nil, err
	}

	if err := s.storage.ValidateImage(file); err != nil {
		return nil, err
	}

	result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("canvases"))
	if err != nil {
		return nil, fmt.Errorf("failed to upload canvas image: %w", err)
	}

	canvas.Images = append(canvas.Images, result.URL)
	if err := s.db.Save(canvas).Error; err != nil {
		return nil, fmt.Errorf("failed to save canvas image: %w", err)
	}
	return canvas, nil
}

// SaveThumbnail stores a rendered thumbnail of the canvas. Thumbnails are
// advisory, so no version check applies.
func (s *CanvasService) SaveThumbnail(designerID, designID uuid.UUID, region models.CanvasRegion, thumbnail []byte) (*models.FabricCanvas, error) {
	canvas, err := s.EnsureCanvas(designerID, designID, region)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("canvases/%s_%s_thumb.png", designID, region)
	result, err := s.storage.UploadBytes(thumbnail, key, "image/png", true)
	if err != nil {
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	canvas.ThumbnailURL = result.URL
	if err := s.db.Save(canvas).Error; err != nil {
		return nil, fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return canvas, nil
}

// editableDesign checks the designer owns the design and it is still
// in progress. Finished and later designs are frozen.
func (s *CanvasService) editableDesign(designerID, designID uuid.UUID) (*models.Design, error) {
	var design models.Design
	if err := s.db.First(&design, designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if design.DesignerID != designerID {
		return nil, ErrDesignNotOwned
	}
	if design.Status != models.DesignStatusInProgress {
		return nil, ErrDesignNotEditable
	}
	return &design, nil
}
