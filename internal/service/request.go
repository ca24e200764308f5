package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maintdesk/maintdesk/internal/models"
	"github.com/maintdesk/maintdesk/internal/policy"
	"gorm.io/gorm"
)

// RequestService contains the business logic for the request lifecycle:
// creation, listing, field mutation, status transitions, rating and
// deletion, together with the owned photo set.
type RequestService struct {
	db *gorm.DB
}

// NewRequestService creates a new RequestService.
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Create validates and creates a new request with status "new" and the
// caller as requestor. The request and its photos are written in one
// transaction so a failure leaves no orphaned rows.
func (s *RequestService) Create(caller *models.User, in CreateRequestInput) (*models.Request, error) {
	if err := validateCreate(s.db, in); err != nil {
		return nil, err
	}

	var status models.RequestStatus
	if err := s.db.Where("code = ?", models.StatusCodeNew).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ConfigurationError{Message: `status "new" is not configured`}
		}
		return nil, fmt.Errorf("load initial status: %w", err)
	}

	req := models.Request{
		Title:         in.Title,
		Description:   in.Description,
		StatusID:      status.ID,
		Priority:      in.Priority,
		RoomID:        in.RoomID,
		RequestorID:   caller.ID,
		ResponsibleID: in.ResponsibleID,
		RequestTypeID: in.RequestTypeID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		return insertPhotos(tx, req.ID, in.Photos)
	})
	if err != nil {
		return nil, err
	}

	return s.load(req.ID)
}

// List returns requests visible to the caller, newest first. Ordinary
// callers only see requests where they are requestor or responsible.
// Completed requests are excluded unless includeCompleted is set.
func (s *RequestService) List(caller *models.User, includeCompleted bool) ([]models.Request, error) {
	query := s.db.
		Preload("Status").Preload("Room").Preload("Requestor").
		Preload("Responsible").Preload("RequestType")

	if !policy.CanViewAll(caller) {
		query = query.Where("requests.requestor_id = ? OR requests.responsible_id = ?", caller.ID, caller.ID)
	}
	if !includeCompleted {
		query = query.
			Joins("JOIN request_statuses ON request_statuses.id = requests.status_id").
			Where("request_statuses.code <> ?", models.StatusCodeCompleted)
	}

	var requests []models.Request
	if err := query.Order("requests.created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Get returns a single request with its full ordered photo set.
// Existence is checked before permission, so an unknown id is reported
// as not found even to a caller who could not view it.
func (s *RequestService) Get(caller *models.User, id uuid.UUID) (*RequestDetail, error) {
	req, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(caller, req) {
		return nil, ErrForbidden
	}

	var photos []models.RequestPhoto
	if err := s.db.Where("request_id = ?", id).Order("sort_order").Find(&photos).Error; err != nil {
		return nil, err
	}

	return &RequestDetail{Request: *req, Photos: photos}, nil
}

// Update applies a partial update: nil fields keep their stored value.
// When a photo set is provided the prior set is replaced wholesale in
// the same transaction. The updated timestamp advances even when no
// field changed.
func (s *RequestService) Update(caller *models.User, id uuid.UUID, in UpdateRequestInput) (*models.Request, error) {
	req, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(caller, req) {
		return nil, ErrForbidden
	}
	if err := validateUpdate(s.db, in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Priority != nil {
		updates["priority"] = *in.Priority
	}
	if in.RoomID != nil {
		updates["room_id"] = *in.RoomID
	}
	if in.ResponsibleID != nil {
		updates["responsible_id"] = *in.ResponsibleID
	}
	if in.RequestTypeID != nil {
		updates["request_type_id"] = *in.RequestTypeID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Request{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		if in.Photos != nil {
			if err := tx.Where("request_id = ?", id).Delete(&models.RequestPhoto{}).Error; err != nil {
				return fmt.Errorf("delete photos: %w", err)
			}
			return insertPhotos(tx, id, *in.Photos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(id)
}

// ChangeStatus transitions the request to the given status. Any status
// may follow any other; the transition graph is unconstrained.
func (s *RequestService) ChangeStatus(caller *models.User, id, statusID uuid.UUID) (*models.Request, error) {
	req, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanChangeStatus(caller, req) {
		return nil, ErrForbidden
	}

	var status models.RequestStatus
	if err := s.db.First(&status, "id = ?", statusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Message: "status not found"}
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"status_id":  statusID,
		"updated_at": time.Now().UTC(),
	}
	if err := s.db.Model(&models.Request{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	return s.load(id)
}

// Rate sets or clears the rating. Privileged callers only. A non-nil
// rating must be between 1 and 5.
func (s *RequestService) Rate(caller *models.User, id uuid.UUID, rating *int) (*models.Request, error) {
	if _, err := s.find(id); err != nil {
		return nil, err
	}
	if !policy.CanRate(caller) {
		return nil, ErrForbidden
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, &ValidationError{Message: "rating must be between 1 and 5"}
	}

	updates := map[string]interface{}{
		"rating":     rating,
		"updated_at": time.Now().UTC(),
	}
	if err := s.db.Model(&models.Request{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	return s.load(id)
}

// Delete removes the request and all of its photos in one transaction.
func (s *RequestService) Delete(caller *models.User, id uuid.UUID) error {
	req, err := s.find(id)
	if err != nil {
		return err
	}
	if !policy.CanDelete(caller, req) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.RequestPhoto{}).Error; err != nil {
			return fmt.Errorf("delete photos: %w", err)
		}
		if err := tx.Delete(&models.Request{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		return nil
	})
}

// find fetches the bare request row for policy checks.
func (s *RequestService) find(id uuid.UUID) (*models.Request, error) {
	var req models.Request
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// load fetches a request with all its references preloaded.
func (s *RequestService) load(id uuid.UUID) (*models.Request, error) {
	var req models.Request
	err := s.db.
		Preload("Status").Preload("Room").Preload("Requestor").
		Preload("Responsible").Preload("RequestType").
		First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// insertPhotos persists decoded photo bytes base64-encoded, preserving
// submission order.
func insertPhotos(tx *gorm.DB, requestID uuid.UUID, photos [][]byte) error {
	for i, data := range photos {
		photo := models.RequestPhoto{
			RequestID:  requestID,
			DataBase64: base64.StdEncoding.EncodeToString(data),
			SortOrder:  i,
		}
		if err := tx.Create(&photo).Error; err != nil {
			return fmt.Errorf("insert photo %d: %w", i+1, err)
		}
	}
	return nil
}
