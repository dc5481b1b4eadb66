// internal/services/design_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type DesignService struct {
	db            *gorm.DB
	cfg           *config.Config
	storage       *StorageService
	notifications *NotificationService
}

type CreateDesignRequest struct {
	RequestID uuid.UUID  `json:"request_id" validate:"required"`
	Deadline  *time.Time `json:"deadline,omitempty"`
}

var (
	ErrDesignNotFound     = errors.New("design not found")
	ErrDesignExists       = errors.New("a design already exists for this request")
	ErrDesignNotOwned     = errors.New("design does not belong to this designer")
	ErrRequestNotApproved = errors.New("request must be approved before work starts")
	ErrInvalidTransition  = errors.New("invalid design status transition")
	ErrChecksumMismatch   = errors.New("source file does not match the supplied checksum")
)

func NewDesignService(db *gorm.DB, cfg *config.Config, storage *StorageService, notifications *NotificationService) *DesignService {
	return &DesignService{
		db:            db,
		cfg:           cfg,
		storage:       storage,
		notifications: notifications,
	}
}

// CreateDesign lets a designer claim an approved request. At most one design
// may ever exist per request; the transaction re-checks under lock and the
// partial unique index on request_id backs it up.
func (s *DesignService) CreateDesign(designerID uuid.UUID, req *CreateDesignRequest) (*models.Design, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var design *models.Design
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.DesignRequest
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&request, req.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if request.Status != models.RequestStatusApproved {
			return ErrRequestNotApproved
		}

		var count int64
		if err := tx.Model(&models.Design{}).Where("request_id = ?", request.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return ErrDesignExists
		}

		design = &models.Design{
			ClientID:   request.ClientID,
			DesignerID: designerID,
			RequestID:  request.ID,
			Status:     models.DesignStatusInProgress,
			Deadline:   req.Deadline,
		}
		if err := tx.Create(design).Error; err != nil {
			return fmt.Errorf("failed to create design: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.notifications.Notify(
		design.ClientID,
		"design_started",
		"Work started on your request",
		"A designer has started working on your design request",
		"design", design.ID,
	)

	return design, nil
}

func (s *DesignService) GetDesign(designID uuid.UUID) (*models.Design, error) {
	var design models.Design
	err := s.db.Preload("Client").Preload("Designer").
		Preload("Request.Size").Preload("Canvases").Preload("Previews.Size").
		First(&design, designID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &design, nil
}

// ListDesignerDesigns returns a designer's workload, optionally filtered by
// status.
func (s *DesignService) ListDesignerDesigns(designerID uuid.UUID, params utils.PaginationParams) ([]models.Design, int64, error) {
	return s.listDesigns(s.db.Model(&models.Design{}).Where("designer_id = ?", designerID), params)
}

// ListClientDesigns returns the designs made for a client's requests.
func (s *DesignService) ListClientDesigns(clientID uuid.UUID, params utils.PaginationParams) ([]models.Design, int64, error) {
	return s.listDesigns(s.db.Model(&models.Design{}).Where("client_id = ?", clientID), params)
}

func (s *DesignService) listDesigns(query *gorm.DB, params utils.PaginationParams) ([]models.Design, int64, error) {
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count designs: %w", err)
	}

	allowedSortFields := []string{"created_at", "status", "deadline"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var designs []models.Design
	err := query.Preload("Request.Size").Preload("Client").Preload("Designer").
		Find(&designs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list designs: %w", err)
	}

	return designs, total, nil
}

// FinishDesign moves an in-progress design to finished and tells the client
// it is ready for review. Only the owning designer may finish it.
func (s *DesignService) FinishDesign(designerID, designID uuid.UUID) (*models.Design, error) {
	design, err := s.transitionDesign(designID, models.DesignStatusFinished, &designerID)
	if err != nil {
		return nil, err
	}

	go func() {
		s.notifications.Notify(
			design.ClientID,
			"design_finished",
			"Design ready for review",
			fmt.Sprintf("The design for %q is finished", design.Request.Title),
			"design", design.ID,
		)
		if err := s.notifications.SendDesignFinishedEmail(design); err != nil {
			fmt.Printf("Failed to send design finished email: %v\n", err)
		}
	}()

	return design, nil
}

// ApproveDesign is the client's final sign-off on a billed design.
func (s *DesignService) ApproveDesign(clientID, designID uuid.UUID) (*models.Design, error) {
	var design models.Design
	if err := s.db.First(&design, designID).Error; err != nil {
		return nil, ErrDesignNotFound
	}
	if design.ClientID != clientID {
		return nil, ErrDesignNotOwned
	}

	approved, err := s.transitionDesign(designID, models.DesignStatusApproved, nil)
	if err != nil {
		return nil, err
	}

	go s.notifications.Notify(
		approved.DesignerID,
		"design_approved",
		"Design approved",
		fmt.Sprintf("The client approved the design for %q", approved.Request.Title),
		"design", approved.ID,
	)

	return approved, nil
}

// MarkBilled records that payment cleared for a finished design. Called by
// the billing flow, never directly from a handler.
func (s *DesignService) MarkBilled(designID uuid.UUID) (*models.Design, error) {
	return s.transitionDesign(designID, models.DesignStatusBilled, nil)
}

// transitionDesign applies one forward step of the design lifecycle. When
// designerID is set, ownership is checked as well.
func (s *DesignService) transitionDesign(designID uuid.UUID, target models.DesignStatus, designerID *uuid.UUID) (*models.Design, error) {
	var design models.Design
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Client").Preload("Request").First(&design, designID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDesignNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if designerID != nil && design.DesignerID != *designerID {
			return ErrDesignNotOwned
		}

		if !models.CanTransitionDesign(design.Status, target) {
			return ErrInvalidTransition
		}

		design.Status = target
		if err := tx.Save(&design).Error; err != nil {
			return fmt.Errorf("failed to update design: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &design, nil
}

// SetDeadline updates the target delivery date on an active design.
func (s *DesignService) SetDeadline(designerID, designID uuid.UUID, deadline *time.Time) (*models.Design, error) {
	var design models.Design
	if err := s.db.First(&design, designID).Error; err != nil {
		return nil, ErrDesignNotFound
	}
	if design.DesignerID != designerID {
		return nil, ErrDesignNotOwned
	}
	if design.Status != models.DesignStatusInProgress {
		return nil, ErrInvalidTransition
	}

	design.Deadline = deadline
	if err := s.db.Save(&design).Error; err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}
	return &design, nil
}

// UploadSourceFile attaches a production source file (vector, PSD, archive)
// to the design. A non-empty checksum is verified against the file content
// before anything is stored.
func (s *DesignService) UploadSourceFile(designerID, designID uuid.UUID, file multipart.File, header *multipart.FileHeader, checksum string) (*models.Design, error) {
	var design models.Design
	if err := s.db.First(&design, designID).Error; err != nil {
		return nil, ErrDesignNotFound
	}
	if design.DesignerID != designerID {
		return nil, ErrDesignNotOwned
	}

	if checksum != "" {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read source file: %w", err)
		}
		if !utils.ValidateFileHash(data, checksum) {
			return nil, ErrChecksumMismatch
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind source file: %w", err)
		}
	}

	result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("sources"))
	if err != nil {
		return nil, fmt.Errorf("failed to upload source file: %w", err)
	}

	design.SourceFiles = append(design.SourceFiles, result.URL)
	if err := s.db.Save(&design).Error; err != nil {
		return nil, fmt.Errorf("failed to save source file: %w", err)
	}
	return &design, nil
}
