package db

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/maintdesk/maintdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateDefaultAdmin creates an administrator account from ADMIN_LOGIN
// and ADMIN_PASSWORD when the users table is empty. Without at least one
// administrator nobody can create further accounts.
func CreateDefaultAdmin(db *gorm.DB) error {
	login := os.Getenv("ADMIN_LOGIN")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if login == "" || password == "" {
		slog.Info("No ADMIN_LOGIN or ADMIN_PASSWORD set, skipping default admin creation")
		return nil
	}
	if name == "" {
		name = login
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		slog.Info("Users already exist, skipping default admin creation")
		return nil
	}

	var role models.Role
	if err := db.Where("code = ?", models.RoleAdministrator).First(&role).Error; err != nil {
		return fmt.Errorf("administrator role not found: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Login:        login,
		Name:         name,
		PasswordHash: string(hashedPassword),
		RoleID:       role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("Default admin user created", "login", login)
	return nil
}
