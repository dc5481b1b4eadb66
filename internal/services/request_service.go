// internal/services/request_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type RequestService struct {
	db            *gorm.DB
	cfg           *config.Config
	storage       *StorageService
	notifications *NotificationService
}

type SubmitRequestRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	SizeID      uuid.UUID        `json:"size_id" validate:"required"`
	TshirtType  models.ShirtType `json:"tshirt_type" validate:"required,oneof=jersey polo tshirt long_sleeves"`
	Gender      string           `json:"gender" validate:"omitempty,oneof=male female unisex"`
	Description string           `json:"description" validate:"omitempty,max=5000"`
	SketchURL   string           `json:"sketch_url" validate:"omitempty,url"`
}

// RequestCard is the board representation of a request: enough to render the
// card without loading full relations client-side.
type RequestCard struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	ClientName   string               `json:"client_name"`
	DesignerName string               `json:"designer_name"`
	SizeLabel    string               `json:"size_label"`
	TshirtType   models.ShirtType     `json:"tshirt_type"`
	Status       models.RequestStatus `json:"status"`
	DesignStatus models.DesignStatus  `json:"design_status,omitempty"`
	SketchURL    string               `json:"sketch_url,omitempty"`
	SubmittedAt  string               `json:"submitted_at"`
}

var (
	ErrRequestNotFound   = errors.New("design request not found")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrRequestNotOwned   = errors.New("request does not belong to this client")
)

func NewRequestService(db *gorm.DB, cfg *config.Config, storage *StorageService, notifications *NotificationService) *RequestService {
	return &RequestService{
		db:            db,
		cfg:           cfg,
		storage:       storage,
		notifications: notifications,
	}
}

func (s *RequestService) SubmitRequest(clientID uuid.UUID, req *SubmitRequestRequest) (*models.DesignRequest, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !models.ValidShirtType(req.TshirtType) {
		return nil, errors.New("invalid shirt type")
	}

	// Verify the size exists
	var size models.ShirtSize
	if err := s.db.First(&size, req.SizeID).Error; err != nil {
		return nil, errors.New("shirt size not found")
	}

	request := &models.DesignRequest{
		ClientID:    clientID,
		SizeID:      req.SizeID,
		Title:       strings.TrimSpace(req.Title),
		TshirtType:  req.TshirtType,
		Gender:      req.Gender,
		SketchURL:   req.SketchURL,
		Description: strings.TrimSpace(req.Description),
		Status:      models.RequestStatusPending,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Tell the admins there is a new request to triage
	go s.notifications.NotifyAdmins(
		"request_submitted",
		"New design request",
		fmt.Sprintf("Request %q was submitted and is awaiting review", request.Title),
		"design_request", request.ID,
	)

	return request, nil
}

func (s *RequestService) UploadSketch(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if err := s.storage.ValidateImage(file); err != nil {
		return nil, err
	}
	return s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("sketches"))
}

func (s *RequestService) GetRequest(requestID uuid.UUID) (*models.DesignRequest, error) {
	var request models.DesignRequest
	err := s.db.Preload("Client").Preload("Size").Preload("Design.Designer").
		First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &request, nil
}

// ListClientRequests returns the requests a client has submitted, newest
// first, optionally filtered by status.
func (s *RequestService) ListClientRequests(clientID uuid.UUID, params utils.PaginationParams) ([]models.DesignRequest, int64, error) {
	query := s.db.Model(&models.DesignRequest{}).Where("client_id = ?", clientID)

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var requests []models.DesignRequest
	if err := query.Preload("Size").Preload("Design").Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	return requests, total, nil
}

// ListRequests is the admin/designer view across all clients.
func (s *RequestService) ListRequests(params utils.PaginationParams) ([]models.DesignRequest, int64, error) {
	query := s.db.Model(&models.DesignRequest{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	allowedSortFields := []string{"created_at", "title", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var requests []models.DesignRequest
	err := query.Preload("Client").Preload("Size").Preload("Design.Designer").
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	return requests, total, nil
}

// ListRequestCards returns the board cards for approved requests. Requests
// whose design has not been started yet show "Unassigned" as the designer.
func (s *RequestService) ListRequestCards(params utils.PaginationParams) ([]RequestCard, int64, error) {
	if params.Status == "" {
		params.Status = string(models.RequestStatusApproved)
	}

	requests, total, err := s.ListRequests(params)
	if err != nil {
		return nil, 0, err
	}

	cards := make([]RequestCard, 0, len(requests))
	for i := range requests {
		cards = append(cards, BuildRequestCard(&requests[i]))
	}
	return cards, total, nil
}

// BuildRequestCard flattens a request into its board card. The designer name
// falls back to "Unassigned" until a design exists for the request.
func BuildRequestCard(request *models.DesignRequest) RequestCard {
	card := RequestCard{
		ID:           request.ID,
		Title:        request.Title,
		ClientName:   request.Client.FullName(),
		DesignerName: "Unassigned",
		SizeLabel:    request.Size.SizeLabel,
		TshirtType:   request.TshirtType,
		Status:       request.Status,
		SketchURL:    request.SketchURL,
		SubmittedAt:  request.CreatedAt.Format("2006-01-02"),
	}

	if request.Design != nil {
		card.DesignStatus = request.Design.Status
		if name := strings.TrimSpace(request.Design.Designer.FullName()); name != "" {
			card.DesignerName = name
		}
	}

	return card
}

// ApproveRequest moves a pending request to approved. Only pending requests
// can transition.
func (s *RequestService) ApproveRequest(requestID uuid.UUID) (*models.DesignRequest, error) {
	return s.reviewRequest(requestID, models.RequestStatusApproved, "")
}

// RejectRequest moves a pending request to rejected with an optional reason
// forwarded to the client.
func (s *RequestService) RejectRequest(requestID uuid.UUID, reason string) (*models.DesignRequest, error) {
	return s.reviewRequest(requestID, models.RequestStatusRejected, reason)
}

func (s *RequestService) reviewRequest(requestID uuid.UUID, target models.RequestStatus, reason string) (*models.DesignRequest, error) {
	var request models.DesignRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Client").First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !models.CanTransitionRequest(request.Status, target) {
			return ErrRequestNotPending
		}

		request.Status = target
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your request %q was %s", request.Title, target)
	if target == models.RequestStatusRejected && reason != "" {
		message = fmt.Sprintf("%s: %s", message, reason)
	}
	go s.notifications.Notify(
		request.ClientID,
		"request_reviewed",
		"Request "+string(target),
		message,
		"design_request", request.ID,
	)

	return &request, nil
}
