package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/maintdesk/maintdesk/internal/config"
	"github.com/maintdesk/maintdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New creates a new database connection based on configuration
func New(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		// WAL mode and busy timeout for better concurrency
		dialector = sqlite.Open(cfg.DSN + "?_journal_mode=WAL&_busy_timeout=5000")
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// WAL allows concurrent reads but only one writer; a single
		// connection avoids lock contention entirely.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		slog.Info("Configured SQLite with WAL mode and single connection")
	} else {
		maxIdleConns := cfg.MaxIdleConns
		if maxIdleConns <= 0 {
			maxIdleConns = 10
		}
		maxOpenConns := cfg.MaxOpenConns
		if maxOpenConns <= 0 {
			maxOpenConns = 100
		}
		connMaxLifetime := cfg.ConnMaxLifetime
		if connMaxLifetime <= 0 {
			connMaxLifetime = 60
		}

		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

		slog.Info("Configured PostgreSQL connection pool",
			"max_idle_conns", maxIdleConns,
			"max_open_conns", maxOpenConns,
			"conn_max_lifetime_min", connMaxLifetime)
	}

	return db, nil
}

// Migrate runs database migrations for all models and seeds the
// reference data the lifecycle engine depends on. The "new" status in
// particular is a deployment precondition for request creation.
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Room{},
		&models.RequestStatus{},
		&models.RequestType{},
		&models.Request{},
		&models.RequestPhoto{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedRoles(db); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := seedStatuses(db); err != nil {
		return fmt.Errorf("failed to seed statuses: %w", err)
	}
	if err := seedRequestTypes(db); err != nil {
		return fmt.Errorf("failed to seed request types: %w", err)
	}

	return nil
}

// seedRoles creates the three fixed roles if they don't exist.
func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: "Administrator", Code: models.RoleAdministrator},
		{Name: "Director", Code: models.RoleDirector},
		{Name: "User", Code: models.RoleUser},
	}

	for _, role := range roles {
		var existing models.Role
		result := db.Where("code = ?", role.Code).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			slog.Info("Created default role", "role", role.Code)
		}
	}

	return nil
}

// seedStatuses creates the default status set. Administrators may add
// to it later; only the codes below carry built-in meaning.
func seedStatuses(db *gorm.DB) error {
	statuses := []models.RequestStatus{
		{Name: "New", Code: models.StatusCodeNew, Color: "#2196F3", SortOrder: 1},
		{Name: "In progress", Code: models.StatusCodeInProgress, Color: "#FF9800", SortOrder: 2},
		{Name: "Completed", Code: models.StatusCodeCompleted, Color: "#4CAF50", SortOrder: 3},
		{Name: "Cancelled", Code: models.StatusCodeCancelled, Color: "#9E9E9E", SortOrder: 4},
	}

	for _, status := range statuses {
		var existing models.RequestStatus
		result := db.Where("code = ?", status.Code).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&status).Error; err != nil {
				return err
			}
			slog.Info("Created default status", "status", status.Code)
		}
	}

	return nil
}

// seedRequestTypes creates the default request categories.
func seedRequestTypes(db *gorm.DB) error {
	types := []models.RequestType{
		{Name: "Repair", SortOrder: 1},
		{Name: "Software installation", SortOrder: 2},
		{Name: "Configuration", SortOrder: 3},
		{Name: "Consultation", SortOrder: 4},
		{Name: "Procurement", SortOrder: 5},
		{Name: "Other", SortOrder: 6},
	}

	for _, rt := range types {
		var existing models.RequestType
		result := db.Where("name = ?", rt.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&rt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
