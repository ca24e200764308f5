package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role codes. Administrator and director carry the same authorization
// weight everywhere; "user" is an ordinary account.
const (
	RoleAdministrator = "administrator"
	RoleDirector      = "director"
	RoleUser          = "user"
)

// Role represents a user role (administrator, director, user)
type Role struct {
	ID   uuid.UUID `gorm:"type:text;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
	Code string    `gorm:"uniqueIndex;not null" json:"code"`
}

// BeforeCreate hook to generate UUID
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
