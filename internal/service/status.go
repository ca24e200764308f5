package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
	"github.com/maintdesk/maintdesk/internal/policy"
	"gorm.io/gorm"
)

// StatusService manages the configurable request status set.
type StatusService struct {
	db *gorm.DB
}

// NewStatusService creates a new StatusService.
func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// List returns all statuses ordered by sort order, then name.
func (s *StatusService) List() ([]models.RequestStatus, error) {
	var statuses []models.RequestStatus
	if err := s.db.Order("sort_order, name").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Create adds a status. Duplicate codes are reported as a conflict.
func (s *StatusService) Create(caller *models.User, in StatusInput) (*models.RequestStatus, error) {
	if !policy.CanManageReferenceData(caller) {
		return nil, ErrForbidden
	}
	if in.Name == "" || in.Code == "" {
		return nil, &ValidationError{Message: "status name and code are required"}
	}

	color := in.Color
	if color == "" {
		color = models.DefaultStatusColor
	}

	status := models.RequestStatus{
		Name:      in.Name,
		Code:      in.Code,
		Color:     color,
		SortOrder: in.SortOrder,
	}
	if err := s.db.Create(&status).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: "status with this code already exists"}
		}
		return nil, fmt.Errorf("create status: %w", err)
	}
	return &status, nil
}

// Update replaces a status's fields.
func (s *StatusService) Update(caller *models.User, id uuid.UUID, in StatusInput) (*models.RequestStatus, error) {
	if !policy.CanManageReferenceData(caller) {
		return nil, ErrForbidden
	}
	if in.Name == "" || in.Code == "" {
		return nil, &ValidationError{Message: "status name and code are required"}
	}

	var status models.RequestStatus
	if err := s.db.First(&status, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	status.Name = in.Name
	status.Code = in.Code
	if in.Color != "" {
		status.Color = in.Color
	}
	status.SortOrder = in.SortOrder
	if err := s.db.Save(&status).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: "status with this code already exists"}
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	return &status, nil
}

// Delete removes a status unless any request still references it.
func (s *StatusService) Delete(caller *models.User, id uuid.UUID) error {
	if !policy.CanManageReferenceData(caller) {
		return ErrForbidden
	}

	var status models.RequestStatus
	if err := s.db.First(&status, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var count int64
	if err := s.db.Model(&models.Request{}).Where("status_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: "status is referenced by existing requests"}
	}

	return s.db.Delete(&status).Error
}
