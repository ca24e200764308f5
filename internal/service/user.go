package service

import (
	"errors"
	"fmt"

	"github.com/maintdesk/maintdesk/internal/models"
	"github.com/maintdesk/maintdesk/internal/policy"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages accounts. Listing and creation are privileged;
// ListResponsible is open to any authenticated caller so the assignee
// picker can be populated.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users with their roles, ordered by name.
func (s *UserService) List(caller *models.User) ([]models.User, error) {
	if !policy.CanManageUsers(caller) {
		return nil, ErrForbidden
	}

	var users []models.User
	if err := s.db.Preload("Role").Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListResponsible returns ordinary-role users eligible to be assigned
// as responsible, ordered by name.
func (s *UserService) ListResponsible() ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.code = ?", models.RoleUser).
		Order("users.name").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Create adds an account. All fields are required; duplicate logins are
// reported as a conflict.
func (s *UserService) Create(caller *models.User, in CreateUserInput) (*models.User, error) {
	if !policy.CanManageUsers(caller) {
		return nil, ErrForbidden
	}
	if in.Login == "" || in.Password == "" || in.Name == "" {
		return nil, &ValidationError{Message: "login, password and name are required"}
	}

	var role models.Role
	if err := s.db.First(&role, "id = ?", in.RoleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Message: "role not found"}
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Login:        in.Login,
		Name:         in.Name,
		PasswordHash: string(hash),
		RoleID:       role.ID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: "user with this login already exists"}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	user.Role = role
	return &user, nil
}
