package service

import (
	"github.com/maintdesk/maintdesk/internal/models"
	"gorm.io/gorm"
)

// TypeService exposes the read-only request type lookup table.
type TypeService struct {
	db *gorm.DB
}

// NewTypeService creates a new TypeService.
func NewTypeService(db *gorm.DB) *TypeService {
	return &TypeService{db: db}
}

// List returns all request types ordered by sort order, then name.
func (s *TypeService) List() ([]models.RequestType, error) {
	var types []models.RequestType
	if err := s.db.Order("sort_order, name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
