package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/wellnest-app/wellnest-backend/internal/db"
	"github.com/wellnest-app/wellnest-backend/internal/handlers"
	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/server"
	"github.com/wellnest-app/wellnest-backend/internal/services"
	"github.com/wellnest-app/wellnest-backend/internal/utils"
)

func main() {
	// Logger Setup
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on process environment")
	}
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres Setup
	log.Info("Setting up Postgres from Main now...")
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("DB init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repositories Setup
	log.Info("Setting up Repositories from Main now...")
	sessionRepo := repos.NewChatSessionRepo(thePG, log)
	messageRepo := repos.NewChatMessageRepo(thePG, log)
	archiveRepo := repos.NewArchivedChatRepo(thePG, log)
	summaryRepo := repos.NewChatSummaryRepo(thePG, log)
	checkInRepo := repos.NewCheckInRepo(thePG, log)
	profileRepo := repos.NewMedicalProfileRepo(thePG, log)

	// Services Setup
	log.Info("Setting up Services from Main now...")
	modelService := services.NewModelService(log)
	profileService := services.NewMedicalProfileService(log, profileRepo)
	chatService := services.NewChatService(thePG, log, sessionRepo, messageRepo, archiveRepo, summaryRepo, modelService, profileService)
	checkInService := services.NewCheckInService(log, checkInRepo)
	textService, err := services.NewTextService(log)
	if err != nil {
		log.Warn("Could not init TextService; sleep alerts disabled", "error", err)
	}
	sleepRelayService := services.NewSleepRelayService(log, modelService, textService)

	// Handler Setup
	log.Info("Setting up Handlers from Main now...")
	chatHandler := handlers.NewChatHandler(chatService, modelService, profileService, log)
	checkInHandler := handlers.NewCheckInHandler(checkInService, log)
	profileHandler := handlers.NewMedicalProfileHandler(profileService, log)
	sleepHandler := handlers.NewSleepHandler(sleepRelayService, log)

	// Router Setup
	router := server.NewRouter(server.RouterConfig{
		ChatHandler:           chatHandler,
		CheckInHandler:        checkInHandler,
		MedicalProfileHandler: profileHandler,
		SleepHandler:          sleepHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
