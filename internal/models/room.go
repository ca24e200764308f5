package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a facility room that requests can reference.
type Room struct {
	ID          uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Number      string    `gorm:"uniqueIndex;not null" json:"number"`
	Description string    `json:"description"`
}

// BeforeCreate hook to generate UUID
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
