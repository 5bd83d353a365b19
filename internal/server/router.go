package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wellnest-app/wellnest-backend/internal/handlers"
)

type RouterConfig struct {
	ChatHandler           *handlers.ChatHandler
	CheckInHandler        *handlers.CheckInHandler
	MedicalProfileHandler *handlers.MedicalProfileHandler
	SleepHandler          *handlers.SleepHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	//-----------------------------------------
	// Cors Setup
	//-----------------------------------------
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	//-----------------------------------------
	// Health Routes
	//-----------------------------------------
	router.GET("/healthz", handlers.Healthz)

	//-----------------------------------------
	// API Routes
	//-----------------------------------------
	api := router.Group("/api")
	{
		// Chat
		api.POST("/chatbot", cfg.ChatHandler.Chatbot)
		api.POST("/chat", cfg.ChatHandler.Relay)
		api.POST("/chatreport", cfg.ChatHandler.ChatReport)
		api.GET("/sessions", cfg.ChatHandler.GetSessions)
		api.GET("/chat/archived", cfg.ChatHandler.GetArchivedChats)
		api.GET("/chat/:sessionId", cfg.ChatHandler.GetChat)
		api.DELETE("/chat/:sessionId", cfg.ChatHandler.DeleteChat)
		api.POST("/chat/clear", cfg.ChatHandler.ClearChat)
		api.POST("/saveSummary", cfg.ChatHandler.SaveSummary)
		api.GET("/active-days", cfg.ChatHandler.GetActiveDays)

		// Check-ins
		api.POST("/checkin", cfg.CheckInHandler.RecordCheckIn)
		api.GET("/checkins", cfg.CheckInHandler.GetCheckIns)

		// Medical profile
		api.GET("/medical-profile", cfg.MedicalProfileHandler.GetProfile)
		api.POST("/medical-profile", cfg.MedicalProfileHandler.UpdateProfile)
		api.POST("/medical-profile/condition", cfg.MedicalProfileHandler.AddCondition)
		api.DELETE("/medical-profile/condition", cfg.MedicalProfileHandler.RemoveCondition)
		api.POST("/medical-profile/medication", cfg.MedicalProfileHandler.AddMedication)
		api.DELETE("/medical-profile/medication", cfg.MedicalProfileHandler.RemoveMedication)
		api.GET("/medical-profile/context", cfg.MedicalProfileHandler.GetContext)
	}

	// Fitbit sleep relay (legacy path, no /api prefix)
	router.POST("/send-sleep-data", cfg.SleepHandler.SendSleepData)

	return router
}
