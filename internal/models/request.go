package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority is the urgency level of a request.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is one of the configured priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Request is a maintenance request. The requestor is set at creation and
// never changes; the responsible assignee may change. Status always
// references an existing RequestStatus.
type Request struct {
	ID            uuid.UUID     `gorm:"type:text;primary_key" json:"id"`
	Title         string        `gorm:"size:200;not null" json:"title"`
	Description   string        `gorm:"size:5000;not null" json:"description"`
	StatusID      uuid.UUID     `gorm:"type:text;not null;index" json:"status_id"`
	Status        RequestStatus `gorm:"foreignKey:StatusID" json:"status"`
	Priority      *Priority     `json:"priority,omitempty"`
	RoomID        *uuid.UUID    `gorm:"type:text" json:"room_id,omitempty"`
	Room          *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RequestorID   uuid.UUID     `gorm:"type:text;not null;index" json:"requestor_id"`
	Requestor     User          `gorm:"foreignKey:RequestorID" json:"requestor"`
	ResponsibleID *uuid.UUID    `gorm:"type:text;index" json:"responsible_id,omitempty"`
	Responsible   *User         `gorm:"foreignKey:ResponsibleID" json:"responsible,omitempty"`
	Rating        *int          `json:"rating,omitempty"`
	RequestTypeID *uuid.UUID    `gorm:"type:text" json:"request_type_id,omitempty"`
	RequestType   *RequestType  `gorm:"foreignKey:RequestTypeID" json:"request_type,omitempty"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BeforeCreate hook to generate UUID
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
