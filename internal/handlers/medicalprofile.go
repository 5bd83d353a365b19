package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/services"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type MedicalProfileHandler struct {
	profileService services.MedicalProfileService
	log            *logger.Logger
}

func NewMedicalProfileHandler(profileService services.MedicalProfileService, log *logger.Logger) *MedicalProfileHandler {
	return &MedicalProfileHandler{
		profileService: profileService,
		log:            log.With("handler", "MedicalProfileHandler"),
	}
}

func (mph *MedicalProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	profile, err := mph.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medical profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mph *MedicalProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		UserID           string                  `json:"userId"`
		HealthConditions []types.HealthCondition `json:"healthConditions"`
		Medications      []types.Medication      `json:"medications"`
		Allergies        []string                `json:"allergies"`
		BloodType        string                  `json:"bloodType"`
		EmergencyContact types.EmergencyContact  `json:"emergencyContact"`
		Notes            string                  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	profile, err := mph.profileService.UpdateProfile(c.Request.Context(), req.UserID, services.UpdateProfileInput{
		HealthConditions: req.HealthConditions,
		Medications:      req.Medications,
		Allergies:        req.Allergies,
		BloodType:        req.BloodType,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medical profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mph *MedicalProfileHandler) AddCondition(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		Condition string `json:"condition"`
		Severity  string `json:"severity,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Condition == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and condition are required"})
		return
	}
	profile, err := mph.profileService.AddCondition(c.Request.Context(), req.UserID, req.Condition, req.Severity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add condition"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mph *MedicalProfileHandler) RemoveCondition(c *gin.Context) {
	var req struct {
		UserID      string `json:"userId"`
		ConditionID string `json:"conditionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.ConditionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and condition ID are required"})
		return
	}
	conditionID, err := uuid.Parse(req.ConditionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and condition ID are required"})
		return
	}
	profile, err := mph.profileService.RemoveCondition(c.Request.Context(), req.UserID, conditionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove condition"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mph *MedicalProfileHandler) AddMedication(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		Name      string `json:"name"`
		Dosage    string `json:"dosage,omitempty"`
		Frequency string `json:"frequency,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and medication name are required"})
		return
	}
	profile, err := mph.profileService.AddMedication(c.Request.Context(), req.UserID, req.Name, req.Dosage, req.Frequency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add medication"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (mph *MedicalProfileHandler) RemoveMedication(c *gin.Context) {
	var req struct {
		UserID       string `json:"userId"`
		MedicationID string `json:"medicationId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.MedicationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and medication ID are required"})
		return
	}
	medicationID, err := uuid.Parse(req.MedicationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and medication ID are required"})
		return
	}
	profile, err := mph.profileService.RemoveMedication(c.Request.Context(), req.UserID, medicationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove medication"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetContext exposes the chatbot-facing context string alongside the
// profile it was built from.
func (mph *MedicalProfileHandler) GetContext(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	context, profile, err := mph.profileService.HealthContext(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get health context"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"context": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"context": context, "profile": profile})
}
