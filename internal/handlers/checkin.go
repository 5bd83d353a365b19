package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/services"
)

type CheckInHandler struct {
	checkInService services.CheckInService
	log            *logger.Logger
}

func NewCheckInHandler(checkInService services.CheckInService, log *logger.Logger) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
		log:            log.With("handler", "CheckInHandler"),
	}
}

// RecordCheckIn answers 201 for the first check-in of the day and 200
// with isNewCheckIn:false for every repeat.
func (cih *CheckInHandler) RecordCheckIn(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	result, err := cih.checkInService.RecordCheckIn(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check-in"})
		return
	}

	if result.IsNewCheckIn {
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Check-in recorded successfully",
			"checkInDate":  result.CheckInDate,
			"isNewCheckIn": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Already checked in today",
		"checkInDate":  result.CheckInDate,
		"isNewCheckIn": false,
	})
}

// GetCheckIns returns the month calendar view plus streaks. The month
// query param is 0-based, matching the client's Date.getMonth().
func (cih *CheckInHandler) GetCheckIns(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	now := time.Now()
	month := int(now.Month()) - 1
	year := now.Year()
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 11 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = parsed
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	calendar, err := cih.checkInService.GetCheckIns(c.Request.Context(), userID, month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch check-ins"})
		return
	}
	c.JSON(http.StatusOK, calendar)
}
