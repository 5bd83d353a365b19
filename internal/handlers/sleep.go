package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/services"
)

type SleepHandler struct {
	sleepRelay services.SleepRelayService
	log        *logger.Logger
}

func NewSleepHandler(sleepRelay services.SleepRelayService, log *logger.Logger) *SleepHandler {
	return &SleepHandler{
		sleepRelay: sleepRelay,
		log:        log.With("handler", "SleepHandler"),
	}
}

func (sh *SleepHandler) SendSleepData(c *gin.Context) {
	var req struct {
		SleepData interface{} `json:"sleepData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SleepData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sleepData is required"})
		return
	}
	analysis, err := sh.sleepRelay.Relay(c.Request.Context(), req.SleepData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to forward sleep data"})
		return
	}
	c.Data(http.StatusOK, "application/json", analysis)
}
