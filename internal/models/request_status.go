package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Distinguished status codes. StatusCodeNew must exist before any
// request can be created; StatusCodeCompleted is what the default
// listing excludes. The status set itself is administrator-configurable.
const (
	StatusCodeNew        = "new"
	StatusCodeInProgress = "in_progress"
	StatusCodeCompleted  = "completed"
	StatusCodeCancelled  = "cancelled"
)

// DefaultStatusColor is used when a status is created without a color.
const DefaultStatusColor = "#666666"

// RequestStatus is a configurable request state.
type RequestStatus struct {
	ID        uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Color     string    `gorm:"default:'#666666'" json:"color"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (s *RequestStatus) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
