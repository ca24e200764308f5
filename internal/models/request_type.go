package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestType is a lookup category for requests. Read-only over HTTP.
type RequestType struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (t *RequestType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
