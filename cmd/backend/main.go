package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskzen/taskzen/internal/config"
	"github.com/taskzen/taskzen/internal/database"
	"github.com/taskzen/taskzen/internal/handlers"
	"github.com/taskzen/taskzen/internal/repository"
	"github.com/taskzen/taskzen/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, repository.NewTokenRepository(db), cfg.TokenTTL)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), userRepo)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		admin, err := authService.EnsureAdmin("Administrator", cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("Failed to create admin account: %v", err)
		}
		log.Printf("Admin account ready: %s", admin.Email)
	}

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Background jobs
	scheduler := services.NewSchedulerService(loc)
	reminders := services.NewReminderService(authService, taskService, now)
	if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, reminders.Run); err != nil {
		log.Fatalf("Failed to schedule reminders: %v", err)
	}
	if _, err := scheduler.ScheduleEvery(time.Hour, func() {
		purged, err := authService.PurgeExpiredTokens()
		if err != nil {
			log.Printf("Failed to purge expired tokens: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d expired token(s)", purged)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule token cleanup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := handlers.NewRouter(authService, taskService, now)

	log.Printf("Task API starting on %s", cfg.BackendAddr)
	if err := r.Run(cfg.BackendAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
