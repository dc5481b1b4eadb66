// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type AdminService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type AdminDashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	NewUsersThisMonth int64   `json:"new_users_this_month"`
	TotalDesigners    int64   `json:"total_designers"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	PendingRequests   int64   `json:"pending_requests"`
	ApprovedRequests  int64   `json:"approved_requests"`
	DesignsInProgress int64   `json:"designs_in_progress"`
	DesignsFinished   int64   `json:"designs_finished"`
	DesignsApproved   int64   `json:"designs_approved"`
	LowStockItems     int64   `json:"low_stock_items"`
	UserGrowth        float64 `json:"user_growth"`
	RevenueGrowth     float64 `json:"revenue_growth"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	Role          *models.UserRole   `json:"role,omitempty"`
	UserStatus    *models.UserStatus `json:"user_status,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

type UpdateSettingRequest struct {
	Value       map[string]interface{} `json:"value" validate:"required"`
	Description string                 `json:"description,omitempty"`
}

func NewAdminService(db *gorm.DB, notificationService *NotificationService) *AdminService {
	return &AdminService{
		db:                  db,
		notificationService: notificationService,
	}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	// User statistics
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).Where("status = ?", models.UserStatusActive).Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&stats.NewUsersThisMonth)
	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleDesigner).Count(&stats.TotalDesigners)

	// Revenue statistics
	s.db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", models.TransactionStatusCompleted, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyRevenue)

	// Request and design pipeline
	s.db.Model(&models.DesignRequest{}).
		Where("status = ?", models.RequestStatusPending).Count(&stats.PendingRequests)
	s.db.Model(&models.DesignRequest{}).
		Where("status = ?", models.RequestStatusApproved).Count(&stats.ApprovedRequests)
	s.db.Model(&models.Design{}).
		Where("status = ?", models.DesignStatusInProgress).Count(&stats.DesignsInProgress)
	s.db.Model(&models.Design{}).
		Where("status = ?", models.DesignStatusFinished).Count(&stats.DesignsFinished)
	s.db.Model(&models.Design{}).
		Where("status = ?", models.DesignStatusApproved).Count(&stats.DesignsApproved)

	// Inventory health
	s.db.Model(&models.InventoryItem{}).
		Where("reorder_level IS NOT NULL AND stock <= reorder_level").Count(&stats.LowStockItems)

	// Growth calculations
	var lastMonthUsers int64
	s.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthUsers)

	var lastMonthRevenueAmount float64
	s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.TransactionStatusCompleted, lastMonthStart, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&lastMonthRevenueAmount)

	if lastMonthUsers > 0 {
		stats.UserGrowth = float64(stats.NewUsersThisMonth-lastMonthUsers) / float64(lastMonthUsers) * 100
	}

	if lastMonthRevenueAmount > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenueAmount) / lastMonthRevenueAmount * 100
	}

	return stats, nil
}

// User Management
func (s *AdminService) GetUsers(filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	// Apply filters
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.UserStatus != nil {
		query = query.Where("status = ?", *filter.UserStatus)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm, searchTerm)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "email", "role", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	// Execute query
	var users []models.User
	if err := query.Preload("Designer").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) UpdateUserStatus(userID uuid.UUID, status models.UserStatus, adminID uuid.UUID, reason string) error {
	// Find user
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Admin accounts are out of reach of one another
	if user.Role == models.UserRoleAdmin && user.ID != adminID {
		return errors.New("cannot modify admin user status")
	}

	oldStatus := user.Status
	user.Status = status

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	// Create audit log
	go s.createAuditLog(adminID, "UPDATE_USER_STATUS", "user", &userID,
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": status, "reason": reason})

	// Tell the user what happened
	title := "Account status updated"
	message := fmt.Sprintf("Your account status changed from %s to %s", oldStatus, status)
	if reason != "" {
		message = fmt.Sprintf("%s. Reason: %s", message, reason)
	}
	go s.notificationService.Notify(user.ID, "account_status", title, message, "user", user.ID)

	return nil
}

// Settings Management
func (s *AdminService) GetSettings(category string) ([]models.AdminSetting, error) {
	query := s.db.Model(&models.AdminSetting{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var settings []models.AdminSetting
	if err := query.Order("category ASC, key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *AdminService) UpdateSetting(category, key string, req *UpdateSettingRequest, adminID uuid.UUID) (*models.AdminSetting, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var setting models.AdminSetting
	if err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("setting not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldValue := setting.Value
	setting.Value = models.JSONB(req.Value)
	setting.UpdatedBy = adminID
	if req.Description != "" {
		setting.Description = req.Description
	}

	if err := s.db.Save(&setting).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	go s.createAuditLog(adminID, "UPDATE_SETTING", "admin_setting", &setting.ID,
		map[string]interface{}{"value": oldValue},
		map[string]interface{}{"value": setting.Value})

	return &setting, nil
}

// Audit Logs
func (s *AdminService) GetAuditLogs(params utils.PaginationParams, resourceType string) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{}).Preload("User")

	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if params.Search != "" {
		query = query.Where("action ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action", "resource_type"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}

func (s *AdminService) createAuditLog(adminID uuid.UUID, action, resourceType string, resourceID *uuid.UUID, oldValues, newValues map[string]interface{}) {
	auditLog := &models.AuditLog{
		UserID:       &adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldValues:    models.JSONB(oldValues),
		NewValues:    models.JSONB(newValues),
	}

	if err := s.db.Create(auditLog).Error; err != nil {
		fmt.Printf("Failed to create audit log: %v\n", err)
	}
}
