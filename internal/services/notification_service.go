// internal/services/notification_service.go
package services

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Notify creates an in-app notification row for a single user.
func (s *NotificationService) Notify(userID uuid.UUID, notifType, title, message, resourceType string, resourceID uuid.UUID) {
	notification := &models.Notification{
		UserID:              userID,
		Type:                notifType,
		Title:               title,
		Message:             message,
		Priority:            "medium",
		RelatedResourceType: resourceType,
		RelatedResourceID:   &resourceID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create notification")
	}
}

// NotifyAdmins fans a notification out to every active admin account.
func (s *NotificationService) NotifyAdmins(notifType, title, message, resourceType string, resourceID uuid.UUID) {
	var admins []models.User
	if err := s.db.Where("role = ? AND status = ?", models.UserRoleAdmin, models.UserStatusActive).Find(&admins).Error; err != nil {
		logrus.WithError(err).Error("Failed to load admin users")
		return
	}

	for _, admin := range admins {
		s.Notify(admin.ID, notifType, title, message, resourceType, resourceID)
	}
}

// ListNotifications returns a user's notifications, newest first.
func (s *NotificationService) ListNotifications(userID uuid.UUID, params utils.PaginationParams) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", userID, "unread").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("notification not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if notification.Status == "read" {
		return nil
	}

	now := time.Now()
	notification.Status = "read"
	notification.ReadAt = &now

	if err := s.db.Save(&notification).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	now := time.Now()
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", userID, "unread").
		Updates(map[string]interface{}{"status": "read", "read_at": now}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Design lifecycle emails

func (s *NotificationService) SendDesignFinishedEmail(design *models.Design) error {
	data := map[string]interface{}{
		"ClientName":   design.Client.FullName(),
		"RequestTitle": design.Request.Title,
		"DesignURL":    fmt.Sprintf("%s/designs/%s", s.config.Frontend.BaseURL, design.ID),
	}

	subject := "Your design is ready for review - " + design.Request.Title
	template := s.getEmailTemplate("design_finished")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(design.Client.Email, subject, body)
}

func (s *NotificationService) SendPaymentReceiptEmail(transaction *models.Transaction, clientEmail, clientName, requestTitle string) error {
	data := map[string]interface{}{
		"ClientName":    clientName,
		"RequestTitle":  requestTitle,
		"Amount":        transaction.Amount,
		"Currency":      transaction.Currency,
		"TransactionID": transaction.ID,
	}

	subject := "Payment received - " + requestTitle
	template := s.getEmailTemplate("payment_receipt")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(clientEmail, subject, body)
}

func (s *NotificationService) SendRefundEmail(transaction *models.Transaction, clientEmail, clientName, reason string) error {
	data := map[string]interface{}{
		"ClientName":    clientName,
		"Amount":        transaction.Amount,
		"Currency":      transaction.Currency,
		"Reason":        reason,
		"TransactionID": transaction.ID,
	}

	subject := "Refund processed"
	template := s.getEmailTemplate("refund_notification")
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(clientEmail, subject, body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"design_finished": {
			Subject: "Your design is ready",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.ClientName}},</h2>
	<p>The design for your request "{{.RequestTitle}}" is finished and ready for your review.</p>
	<a href="{{.DesignURL}}">View Design</a>
	<p>Best regards,<br>Teeloom Team</p>
</body>
</html>`,
		},
		"payment_receipt": {
			Subject: "Payment received",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.ClientName}},</h2>
	<p>We received your payment of {{.Amount}} {{.Currency}} for "{{.RequestTitle}}".</p>
	<p>Transaction reference: {{.TransactionID}}</p>
	<p>Best regards,<br>Teeloom Team</p>
</body>
</html>`,
		},
		"refund_notification": {
			Subject: "Refund processed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.ClientName}},</h2>
	<p>Your refund of {{.Amount}} {{.Currency}} has been processed.</p>
	<p>Reason: {{.Reason}}</p>
	<p>Transaction reference: {{.TransactionID}}</p>
	<p>Best regards,<br>Teeloom Team</p>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
