// @title CRM Backend API
// @version 1.0
// @description REST backend for a small customer relationship management tool

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "crm-backend/docs" // swagger docs registration
	"crm-backend/internal/config"
	"crm-backend/internal/handlers"
	"crm-backend/internal/migrations"
	"crm-backend/internal/repository"
	"crm-backend/internal/routes"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET not set, using development fallback; do not run this in production")
	}

	db, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Fatal("db ping failed", zap.Error(err))
	}

	if err := migrations.Run(context.Background(), db); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// Repositories share the pooled connection; lifecycle is owned here,
	// not by package-level globals.
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	router := routes.New(routes.Handlers{
		Auth:      handlers.NewAuthHandler(userRepo, cfg.JWT.Secret, logger),
		Users:     handlers.NewUserHandler(userRepo, logger),
		Clients:   handlers.NewClientHandler(clientRepo, logger),
		Notes:     handlers.NewNoteHandler(noteRepo, logger),
		Reminders: handlers.NewReminderHandler(reminderRepo, logger),
		Sales:     handlers.NewSaleHandler(saleRepo, logger),
		Dashboard: handlers.NewDashboardHandler(dashboardRepo, logger),
		Health:    handlers.NewHealthHandler(db),
	}, cfg.JWT.Secret, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
