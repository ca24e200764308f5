package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
	"github.com/maintdesk/maintdesk/internal/policy"
	"gorm.io/gorm"
)

// RoomService manages the room lookup table. Reads are open to any
// authenticated user; writes are privileged.
type RoomService struct {
	db *gorm.DB
}

// NewRoomService creates a new RoomService.
func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// List returns all rooms ordered by number.
func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Order("number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Create adds a room. Duplicate numbers are reported as a conflict.
func (s *RoomService) Create(caller *models.User, in RoomInput) (*models.Room, error) {
	if !policy.CanManageReferenceData(caller) {
		return nil, ErrForbidden
	}
	if in.Number == "" {
		return nil, &ValidationError{Message: "room number is required"}
	}

	room := models.Room{Number: in.Number, Description: in.Description}
	if err := s.db.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: "room with this number already exists"}
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

// Update replaces a room's number and description.
func (s *RoomService) Update(caller *models.User, id uuid.UUID, in RoomInput) (*models.Room, error) {
	if !policy.CanManageReferenceData(caller) {
		return nil, ErrForbidden
	}
	if in.Number == "" {
		return nil, &ValidationError{Message: "room number is required"}
	}

	var room models.Room
	if err := s.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room.Number = in.Number
	room.Description = in.Description
	if err := s.db.Save(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: "room with this number already exists"}
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	return &room, nil
}

// Delete removes a room unless any request still references it.
func (s *RoomService) Delete(caller *models.User, id uuid.UUID) error {
	if !policy.CanManageReferenceData(caller) {
		return ErrForbidden
	}

	var room models.Room
	if err := s.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var count int64
	if err := s.db.Model(&models.Request{}).Where("room_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: "room is referenced by existing requests"}
	}

	return s.db.Delete(&room).Error
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// The string check covers sqlite drivers that predate gorm's error
// translation.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
