package service

import (
	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
)

// CreateRequestInput holds parameters for creating a request. Photos
// are decoded image bytes in submission order.
type CreateRequestInput struct {
	Title         string
	Description   string
	Priority      *models.Priority
	RoomID        *uuid.UUID
	ResponsibleID *uuid.UUID
	RequestTypeID *uuid.UUID
	Photos        [][]byte
}

// UpdateRequestInput holds parameters for a partial update. A nil field
// keeps the stored value; only a non-nil Photos pointer replaces the
// photo set (an empty non-nil slice clears it).
type UpdateRequestInput struct {
	Title         *string
	Description   *string
	Priority      *models.Priority
	RoomID        *uuid.UUID
	ResponsibleID *uuid.UUID
	RequestTypeID *uuid.UUID
	Photos        *[][]byte
}

// RequestDetail is a request together with its ordered photo set.
type RequestDetail struct {
	models.Request
	Photos []models.RequestPhoto `json:"photos"`
}

// CreateUserInput holds parameters for creating an account.
type CreateUserInput struct {
	Login    string
	Password string
	Name     string
	RoleID   uuid.UUID
}

// RoomInput holds parameters for creating or updating a room.
type RoomInput struct {
	Number      string
	Description string
}

// StatusInput holds parameters for creating or updating a status.
type StatusInput struct {
	Name      string
	Code      string
	Color     string
	SortOrder int
}
