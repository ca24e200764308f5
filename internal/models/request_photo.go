package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestPhoto is an image attached to a request. Photos are stored
// base64-encoded and owned exclusively by their request: the whole set
// is replaced on update and removed with the request.
type RequestPhoto struct {
	ID         uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	RequestID  uuid.UUID `gorm:"type:text;not null;index" json:"request_id"`
	DataBase64 string    `gorm:"type:text;not null" json:"data_base64"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
}

// BeforeCreate hook to generate UUID
func (p *RequestPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
