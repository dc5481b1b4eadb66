// internal/models/design.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Design is the work-in-progress/finished artifact tied to one request and
// one designer. The request_id unique index backs the 1:1 lookup; creation
// also checks inside the transaction so the invariant holds at write time.
type Design struct {
	BaseModel
	ClientID     uuid.UUID      `json:"client_id" gorm:"type:uuid;not null;index"`
	DesignerID   uuid.UUID      `json:"designer_id" gorm:"type:uuid;not null;index"`
	RequestID    uuid.UUID      `json:"request_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status       DesignStatus   `json:"status" gorm:"type:varchar(20);default:'in_progress';index"`
	PreviewImage string         `json:"preview_image,omitempty" gorm:"size:512"`
	SourceFiles  pq.StringArray `json:"source_files,omitempty" gorm:"type:text[]"`
	Deadline     *time.Time     `json:"deadline,omitempty"`

	// Relationships
	Client   User           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Designer User           `json:"designer,omitempty" gorm:"foreignKey:DesignerID"`
	Request  DesignRequest  `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	Canvases []FabricCanvas  `json:"canvases,omitempty" gorm:"foreignKey:DesignID"`
	Previews []DesignPreview `json:"previews,omitempty" gorm:"foreignKey:DesignID"`
}

// FabricCanvas is one drawable region of a design, independently versioned.
// CanvasJSON is nullable so a canvas row can exist before any drawing occurs.
// At most one canvas exists per (design, region); a composite unique index
// enforces this, and a plain design_id index serves enumeration.
type FabricCanvas struct {
	BaseModel
	DesignID     uuid.UUID      `json:"design_id" gorm:"type:uuid;not null;index:idx_fabric_canvases_design;uniqueIndex:uidx_fabric_canvases_design_region"`
	Region       CanvasRegion   `json:"region" gorm:"type:varchar(20);not null;uniqueIndex:uidx_fabric_canvases_design_region"`
	CanvasJSON   JSONB          `json:"canvas_json,omitempty" gorm:"type:jsonb"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty" gorm:"size:512"`
	Version      int            `json:"version" gorm:"not null;default:0"`
	Images       pq.StringArray `json:"images,omitempty" gorm:"type:text[]"`

	// Relationships
	Design Design `json:"-" gorm:"foreignKey:DesignID"`
}

// HasDrawing reports whether anything has been drawn on the canvas yet.
func (c *FabricCanvas) HasDrawing() bool {
	return len(c.CanvasJSON) > 0
}

// DesignPreview is a rendered image of a design at one shirt size.
type DesignPreview struct {
	BaseModel
	DesignID        uuid.UUID `json:"design_id" gorm:"type:uuid;not null;index"`
	SizeID          uuid.UUID `json:"size_id" gorm:"type:uuid;not null"`
	PreviewImageURL string    `json:"preview_image_url" gorm:"size:512;not null"`

	// Relationships
	Design Design    `json:"-" gorm:"foreignKey:DesignID"`
	Size   ShirtSize `json:"size,omitempty" gorm:"foreignKey:SizeID"`
}
