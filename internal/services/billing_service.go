// internal/services/billing_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

// BillingService invoices finished designs. A confirmed payment moves the
// design from finished to billed; the client's final approval happens after.
type BillingService struct {
	db            *gorm.DB
	config        *config.Config
	designs       *DesignService
	notifications *NotificationService
}

type CreateInvoiceRequest struct {
	DesignID uuid.UUID `json:"design_id" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,min=0.01"`
}

type InvoiceResponse struct {
	Transaction  *models.Transaction `json:"transaction"`
	ClientSecret string              `json:"client_secret"`
	PaymentID    string              `json:"payment_id"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	TransactionID   uuid.UUID `json:"transaction_id" validate:"required"`
}

type RefundRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	Amount        float64   `json:"amount,omitempty"`
	Reason        string    `json:"reason" validate:"required"`
}

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDesignNotFinished   = errors.New("only finished designs can be invoiced")
	ErrAlreadyInvoiced     = errors.New("design already has a pending or completed invoice")
)

func NewBillingService(db *gorm.DB, config *config.Config, designs *DesignService, notifications *NotificationService) *BillingService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &BillingService{
		db:            db,
		config:        config,
		designs:       designs,
		notifications: notifications,
	}
}

// CreateInvoice opens a Stripe PaymentIntent for the design fee of a
// finished design and records the pending transaction.
func (s *BillingService) CreateInvoice(designerID uuid.UUID, req *CreateInvoiceRequest) (*InvoiceResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var design models.Design
	if err := s.db.Preload("Request").First(&design, req.DesignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if design.DesignerID != designerID {
		return nil, ErrDesignNotOwned
	}
	if design.Status != models.DesignStatusFinished {
		return nil, ErrDesignNotFinished
	}

	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("design_id = ? AND status IN ?", design.ID,
			[]models.TransactionStatus{models.TransactionStatusPending, models.TransactionStatusCompleted}).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadyInvoiced
	}

	platformFee := req.Amount * s.config.Payment.PlatformFeePercent / 100

	transaction := &models.Transaction{
		TransactionType: models.TransactionTypeDesignFee,
		DesignID:        design.ID,
		ClientID:        design.ClientID,
		DesignerID:      design.DesignerID,
		Amount:          req.Amount,
		PlatformFee:     platformFee,
		Currency:        s.config.Payment.Currency,
		Status:          models.TransactionStatusPending,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Convert amount to cents for Stripe
	amountInCents := int64(req.Amount * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("transaction_id", transaction.ID.String())
	params.AddMetadata("design_id", design.ID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	transaction.PaymentReference = pi.ID
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to save payment reference: %w", err)
	}

	go s.notifications.Notify(
		design.ClientID,
		"invoice_created",
		"Design fee invoice",
		fmt.Sprintf("An invoice of %.2f %s was issued for %q", req.Amount, transaction.Currency, design.Request.Title),
		"transaction", transaction.ID,
	)

	return &InvoiceResponse{
		Transaction:  transaction,
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
	}, nil
}

// ConfirmPayment reconciles the transaction with the Stripe PaymentIntent
// state. A succeeded payment also marks the design billed.
func (s *BillingService) ConfirmPayment(req *ConfirmPaymentRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Get payment intent from Stripe
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.Preload("Client").Preload("Design.Request").First(&transaction, req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Update transaction based on payment status
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		transaction.Status = models.TransactionStatusCompleted
		transaction.ProcessedAt = &now
		transaction.PaymentReference = pi.ID

		if _, err := s.designs.MarkBilled(transaction.DesignID); err != nil {
			// Payment is real even if the status bump failed
			fmt.Printf("Failed to mark design billed: %v\n", err)
		}

		go func() {
			s.notifications.Notify(
				transaction.DesignerID,
				"payment_received",
				"Payment received",
				fmt.Sprintf("Payment of %.2f %s cleared for %q", transaction.Amount, transaction.Currency, transaction.Design.Request.Title),
				"transaction", transaction.ID,
			)
			if err := s.notifications.SendPaymentReceiptEmail(&transaction, transaction.Client.Email, transaction.Client.FullName(), transaction.Design.Request.Title); err != nil {
				fmt.Printf("Failed to send payment receipt: %v\n", err)
			}
		}()

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		transaction.Status = models.TransactionStatusPending

	default:
		transaction.Status = models.TransactionStatusFailed
	}

	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

// ProcessRefund refunds a completed design fee through Stripe.
func (s *BillingService) ProcessRefund(req *RefundRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.Preload("Client").First(&transaction, req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if transaction.Status != models.TransactionStatusCompleted {
		return errors.New("can only refund completed transactions")
	}

	// Calculate refund amount
	refundAmount := req.Amount
	if refundAmount <= 0 || refundAmount > transaction.Amount {
		refundAmount = transaction.Amount
	}

	// Process refund through Stripe if we have a payment reference
	if transaction.PaymentReference != "" {
		refundAmountCents := int64(refundAmount * 100)
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(transaction.PaymentReference),
			Amount:        stripe.Int64(refundAmountCents),
			Reason:        stripe.String("requested_by_customer"),
		}

		if _, err := refund.New(params); err != nil {
			return fmt.Errorf("failed to process refund: %w", err)
		}
	}

	// Update transaction
	now := time.Now()
	transaction.Status = models.TransactionStatusRefunded
	transaction.RefundedAt = &now
	transaction.RefundReason = req.Reason

	if err := s.db.Save(&transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	go func() {
		if err := s.notifications.SendRefundEmail(&transaction, transaction.Client.Email, transaction.Client.FullName(), req.Reason); err != nil {
			fmt.Printf("Failed to send refund email: %v\n", err)
		}
	}()

	return nil
}

// GetBillingHistory lists the transactions a user took part in, either side.
func (s *BillingService) GetBillingHistory(userID uuid.UUID, params utils.PaginationParams) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Where("client_id = ? OR designer_id = ?", userID, userID).
		Preload("Design.Request")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

// GetDesignerEarnings sums completed design fees net of the platform cut.
func (s *BillingService) GetDesignerEarnings(designerID uuid.UUID) (map[string]interface{}, error) {
	var totalEarnings float64
	s.db.Model(&models.Transaction{}).
		Where("designer_id = ? AND status = ?", designerID, models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount - platform_fee), 0)").Scan(&totalEarnings)

	var completedCount int64
	s.db.Model(&models.Transaction{}).
		Where("designer_id = ? AND status = ?", designerID, models.TransactionStatusCompleted).
		Count(&completedCount)

	return map[string]interface{}{
		"total_earnings":  totalEarnings,
		"completed_count": completedCount,
		"currency":        s.config.Payment.Currency,
	}, nil
}
