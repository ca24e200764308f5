package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maintdesk/maintdesk/internal/api"
	"github.com/maintdesk/maintdesk/internal/config"
	"github.com/maintdesk/maintdesk/internal/db"
	"github.com/maintdesk/maintdesk/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var port int

var rootCmd = &cobra.Command{
	Use:          "maintdesk-server",
	Short:        "Maintenance request tracking API server",
	Long:         "HTTP backend for filing, triaging and resolving facility maintenance requests.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 0, "Port to run the server on (overrides config)")
}

// @title Maintdesk API
// @version 1.0
// @description Maintenance request tracking API
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger.Init(cfg.Log.Format, cfg.Log.Level)
	slog.Info("Starting maintdesk server", "version", Version, "mode", cfg.Server.Mode)

	database, err := db.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Database initialized", "driver", cfg.Database.Driver)

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations completed")

	if err := db.CreateDefaultAdmin(database); err != nil {
		return fmt.Errorf("failed to create default admin user: %w", err)
	}

	router := api.NewRouter(cfg, database)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
