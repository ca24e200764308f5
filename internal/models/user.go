package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a system user. Logins are unique and compared
// case-insensitively at authentication time. Users are soft-deleted,
// never hard-removed, so historical requests keep a valid requestor.
type User struct {
	ID           uuid.UUID      `gorm:"type:text;primary_key" json:"id"`
	Login        string         `gorm:"uniqueIndex;not null" json:"login"`
	Name         string         `gorm:"not null" json:"name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	RoleID       uuid.UUID      `gorm:"type:text;not null" json:"role_id"`
	Role         Role           `gorm:"foreignKey:RoleID" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
