// internal/models/inventory.go
package models

import (
	"github.com/google/uuid"
)

type InventoryCategory struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// Relationships
	Items []InventoryItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

// InventoryItem tracks a stocked material. Stock is adjusted by deltas and
// never allowed to go negative.
type InventoryItem struct {
	BaseModel
	Name         string    `json:"name" gorm:"size:255;not null"`
	CategoryID   uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	Unit         string    `json:"unit" gorm:"size:50;not null"`
	Stock        float64   `json:"stock" gorm:"type:decimal(12,2);not null;default:0"`
	ReorderLevel *float64  `json:"reorder_level,omitempty" gorm:"type:decimal(12,2)"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`

	// Relationships
	Category InventoryCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// NeedsReorder reports whether stock has fallen to or below the reorder
// threshold. Items without a threshold never need reordering.
func (i *InventoryItem) NeedsReorder() bool {
	return i.ReorderLevel != nil && i.Stock <= *i.ReorderLevel
}
