// internal/models/request.go
package models

import (
	"github.com/google/uuid"
)

// DesignRequest is a client's submitted specification for a garment design.
type DesignRequest struct {
	BaseModel
	ClientID    uuid.UUID     `json:"client_id" gorm:"type:uuid;not null;index"`
	SizeID      uuid.UUID     `json:"size_id" gorm:"type:uuid;not null"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	TshirtType  ShirtType     `json:"tshirt_type,omitempty" gorm:"type:varchar(20)"`
	Gender      string        `json:"gender,omitempty" gorm:"size:20"`
	SketchURL   string        `json:"sketch_url,omitempty" gorm:"size:512"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Status      RequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Client User      `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Size   ShirtSize `json:"size,omitempty" gorm:"foreignKey:SizeID"`
	Design *Design   `json:"design,omitempty" gorm:"foreignKey:RequestID"`
}

// ShirtSize describes one garment size entry in the catalog.
type ShirtSize struct {
	BaseModel
	SizeLabel    string       `json:"size_label" gorm:"size:20;not null"`
	Width        float64      `json:"width" gorm:"type:decimal(6,2);not null"`
	Height       float64      `json:"height" gorm:"type:decimal(6,2);not null"`
	Type         ShirtType    `json:"type" gorm:"type:varchar(20);not null"`
	SleeveWidth  *float64     `json:"sleeve_width,omitempty" gorm:"type:decimal(6,2)"`
	SleeveLength *float64     `json:"sleeve_length,omitempty" gorm:"type:decimal(6,2)"`
	Category     SizeCategory `json:"category" gorm:"type:varchar(10);not null;index"`
}
