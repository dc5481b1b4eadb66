// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleDesigner UserRole = "designer"
	UserRoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type DesignStatus string

const (
	DesignStatusInProgress DesignStatus = "in_progress"
	DesignStatusFinished   DesignStatus = "finished"
	DesignStatusBilled     DesignStatus = "billed"
	DesignStatusApproved   DesignStatus = "approved"
)

type CanvasRegion string

const (
	CanvasRegionFront       CanvasRegion = "front"
	CanvasRegionBack        CanvasRegion = "back"
	CanvasRegionLeftSleeve  CanvasRegion = "left_sleeve"
	CanvasRegionRightSleeve CanvasRegion = "right_sleeve"
	CanvasRegionCollar      CanvasRegion = "collar"
	CanvasRegionOther       CanvasRegion = "other"
)

type ShirtType string

const (
	ShirtTypeJersey      ShirtType = "jersey"
	ShirtTypePolo        ShirtType = "polo"
	ShirtTypeTshirt      ShirtType = "tshirt"
	ShirtTypeLongSleeves ShirtType = "long_sleeves"
)

type SizeCategory string

const (
	SizeCategoryKids  SizeCategory = "kids"
	SizeCategoryAdult SizeCategory = "adult"
)

type TransactionType string

const (
	TransactionTypeDesignFee TransactionType = "design_fee"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// ValidCanvasRegion reports whether r belongs to the closed set of drawable
// regions. Any other value is invalid.
func ValidCanvasRegion(r CanvasRegion) bool {
	switch r {
	case CanvasRegionFront, CanvasRegionBack, CanvasRegionLeftSleeve,
		CanvasRegionRightSleeve, CanvasRegionCollar, CanvasRegionOther:
		return true
	}
	return false
}

func ValidShirtType(t ShirtType) bool {
	switch t {
	case ShirtTypeJersey, ShirtTypePolo, ShirtTypeTshirt, ShirtTypeLongSleeves:
		return true
	}
	return false
}

// CanTransitionDesign reports whether a design may move between statuses.
// The lifecycle is strictly forward: in_progress -> finished -> billed -> approved.
func CanTransitionDesign(from, to DesignStatus) bool {
	switch from {
	case DesignStatusInProgress:
		return to == DesignStatusFinished
	case DesignStatusFinished:
		return to == DesignStatusBilled
	case DesignStatusBilled:
		return to == DesignStatusApproved
	}
	return false
}

// CanTransitionRequest reports whether a design request may move between
// statuses. Only pending requests can be decided.
func CanTransitionRequest(from, to RequestStatus) bool {
	return from == RequestStatusPending &&
		(to == RequestStatusApproved || to == RequestStatusRejected)
}
