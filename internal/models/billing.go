// internal/models/billing.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction records the design fee charged to a client when a finished
// design is invoiced.
type Transaction struct {
	BaseModel
	TransactionType  TransactionType   `json:"transaction_type" gorm:"type:varchar(20);not null;index"`
	DesignID         uuid.UUID         `json:"design_id" gorm:"type:uuid;not null;index"`
	ClientID         uuid.UUID         `json:"client_id" gorm:"type:uuid;not null;index"`
	DesignerID       uuid.UUID         `json:"designer_id" gorm:"type:uuid;not null;index"`
	Amount           float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	PlatformFee      float64           `json:"platform_fee" gorm:"type:decimal(10,2);not null;default:0"`
	Currency         string            `json:"currency" gorm:"size:3;default:'usd'"`
	PaymentReference string            `json:"payment_reference,omitempty" gorm:"size:255"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time        `json:"processed_at,omitempty"`
	RefundedAt       *time.Time        `json:"refunded_at,omitempty"`
	RefundReason     string            `json:"refund_reason,omitempty" gorm:"size:255"`

	// Relationships
	Design   Design `json:"design,omitempty" gorm:"foreignKey:DesignID"`
	Client   User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Designer User   `json:"designer,omitempty" gorm:"foreignKey:DesignerID"`
}
