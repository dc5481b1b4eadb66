// internal/services/preview_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"mime/multipart"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
)

// PreviewService renders size-accurate preview images of a design. The base
// render is scaled to each catalog size's physical dimensions so clients see
// proportions, not just artwork.
type PreviewService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
}

var ErrPreviewSourceInvalid = errors.New("preview source image could not be decoded")

func NewPreviewService(db *gorm.DB, cfg *config.Config, storage *StorageService) *PreviewService {
	return &PreviewService{
		db:      db,
		cfg:     cfg,
		storage: storage,
	}
}

// GeneratePreviews decodes the uploaded base render and produces one preview
// per catalog size matching the request's shirt type. Existing previews for
// the design are replaced.
func (s *PreviewService) GeneratePreviews(designerID, designID uuid.UUID, file multipart.File) ([]models.DesignPreview, error) {
	var design models.Design
	if err := s.db.Preload("Request").First(&design, designID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if design.DesignerID != designerID {
		return nil, ErrDesignNotOwned
	}

	src, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrPreviewSourceInvalid
	}

	var sizes []models.ShirtSize
	if err := s.db.Where("type = ?", design.Request.TshirtType).Order("width ASC").Find(&sizes).Error; err != nil {
		return nil, fmt.Errorf("failed to load sizes: %w", err)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no catalog sizes for this shirt type")
	}

	previews := make([]models.DesignPreview, 0, len(sizes))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("design_id = ?", designID).Delete(&models.DesignPreview{}).Error; err != nil {
			return fmt.Errorf("failed to clear old previews: %w", err)
		}

		for _, size := range sizes {
			rendered := s.renderAtSize(src, &size)

			var buf bytes.Buffer
			if err := imaging.Encode(&buf, rendered, imaging.PNG); err != nil {
				return fmt.Errorf("failed to encode preview: %w", err)
			}

			key := fmt.Sprintf("previews/%s_%s.png", designID, size.SizeLabel)
			result, err := s.storage.UploadBytes(buf.Bytes(), key, "image/png", true)
			if err != nil {
				return fmt.Errorf("failed to upload preview: %w", err)
			}

			preview := models.DesignPreview{
				DesignID:        designID,
				SizeID:          size.ID,
				PreviewImageURL: result.URL,
			}
			if err := tx.Create(&preview).Error; err != nil {
				return fmt.Errorf("failed to save preview: %w", err)
			}

			// The preview at the requested size doubles as the design's
			// card image
			if size.ID == design.Request.SizeID {
				design.PreviewImage = result.URL
			}

			previews = append(previews, preview)
		}

		if design.PreviewImage == "" && len(previews) > 0 {
			design.PreviewImage = previews[0].PreviewImageURL
		}
		if err := tx.Save(&design).Error; err != nil {
			return fmt.Errorf("failed to save design preview image: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return previews, nil
}

// ListPreviews returns the stored previews of a design with their sizes.
func (s *PreviewService) ListPreviews(designID uuid.UUID) ([]models.DesignPreview, error) {
	var previews []models.DesignPreview
	if err := s.db.Preload("Size").Where("design_id = ?", designID).Find(&previews).Error; err != nil {
		return nil, fmt.Errorf("failed to list previews: %w", err)
	}
	return previews, nil
}

// renderAtSize scales the base render onto the physical proportions of one
// shirt size. Pixel dimensions derive from centimeters via the configured
// density, clamped so the longest edge never exceeds the configured cap.
func (s *PreviewService) renderAtSize(src image.Image, size *models.ShirtSize) image.Image {
	density := float64(s.cfg.Preview.PixelsPerCM)
	widthPx := size.Width * density
	heightPx := size.Height * density

	maxEdge := float64(s.cfg.Preview.MaxEdgePx)
	if longest := math.Max(widthPx, heightPx); longest > maxEdge {
		scale := maxEdge / longest
		widthPx *= scale
		heightPx *= scale
	}

	w := int(math.Round(widthPx))
	h := int(math.Round(heightPx))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// Fit preserves the artwork's aspect ratio inside the garment bounds,
	// then the fitted image is centered on a transparent canvas of the
	// exact garment proportions.
	fitted := imaging.Fit(src, w, h, imaging.Lanczos)
	canvas := imaging.New(w, h, color.Transparent)
	return imaging.PasteCenter(canvas, fitted)
}
