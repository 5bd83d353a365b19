package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/services"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type ChatHandler struct {
	chatService    services.ChatService
	modelService   services.ModelService
	profileService services.MedicalProfileService
	log            *logger.Logger
}

func NewChatHandler(chatService services.ChatService, modelService services.ModelService, profileService services.MedicalProfileService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		modelService:   modelService,
		profileService: profileService,
		log:            log.With("handler", "ChatHandler"),
	}
}

// Chatbot is the main gateway endpoint: persist the user message, call
// the model, persist and return the reply.
func (ch *ChatHandler) Chatbot(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
		Title     string `json:"title,omitempty"`
		Emotion   string `json:"emotion,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.Message == "" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result, err := ch.chatService.SendMessage(c.Request.Context(), services.SendMessageInput{
		UserID:    req.UserID,
		Message:   req.Message,
		SessionID: req.SessionID,
		Title:     req.Title,
		Emotion:   req.Emotion,
	})
	if err != nil {
		if errors.Is(err, services.ErrUpstream) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chatbot response"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Relay forwards a raw chat payload to the model service, enriched
// with the user's medical profile context and any Fitbit fitness data
// the client attached. No conversation state is persisted here.
func (ch *ChatHandler) Relay(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	healthContext := ""
	if userID, _ := body["userId"].(string); userID != "" {
		hc, _, err := ch.profileService.HealthContext(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed"})
			return
		}
		healthContext = hc
	}
	fullHealthContext := healthContext
	if fullHealthContext == "" {
		fullHealthContext = "No medical profile available"
	}
	if fitnessContext, _ := body["fitnessContext"].(string); fitnessContext != "" {
		fullHealthContext += ". Fitness data: " + fitnessContext
	}
	body["healthContext"] = fullHealthContext

	raw, err := ch.modelService.RelayChat(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed"})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (ch *ChatHandler) ChatReport(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		SessionID string `json:"sessionId"`
		Summary   string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	raw, err := ch.modelService.ChatReport(c.Request.Context(), req.UserID, req.SessionID, req.Summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat report"})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (ch *ChatHandler) GetSessions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	sessions, err := ch.chatService.GetUserSessions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	type sessionView struct {
		ID      string    `json:"id"`
		Title   string    `json:"title"`
		Date    time.Time `json:"date"`
		Preview string    `json:"preview"`
	}
	out := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionView{
			ID:      s.SessionID,
			Title:   s.Title,
			Date:    s.LastUpdated,
			Preview: s.Preview,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (ch *ChatHandler) GetChat(c *gin.Context) {
	sessionID := c.Param("sessionId")
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	msgs, err := ch.chatService.GetChat(c.Request.Context(), sessionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat"})
		return
	}
	if msgs == nil {
		msgs = []*types.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (ch *ChatHandler) DeleteChat(c *gin.Context) {
	sessionID := c.Param("sessionId")
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	if err := ch.chatService.DeleteChat(c.Request.Context(), sessionID, req.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Chat deleted successfully"})
}

func (ch *ChatHandler) ClearChat(c *gin.Context) {
	var req struct {
		UserID    string `json:"userId"`
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Session ID are required"})
		return
	}
	if err := ch.chatService.ClearChat(c.Request.Context(), req.UserID, req.SessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Chat cleared successfully. Chatbot memory retained."})
}

func (ch *ChatHandler) GetArchivedChats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	archives, err := ch.chatService.GetArchivedChats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch archived chats"})
		return
	}
	if archives == nil {
		archives = []*types.ArchivedChat{}
	}
	c.JSON(http.StatusOK, archives)
}

func (ch *ChatHandler) SaveSummary(c *gin.Context) {
	var req struct {
		UserID            string `json:"userId"`
		SessionID         string `json:"sessionId"`
		SummarizedHistory string `json:"summarizedHistory"`
		BotResponse       string `json:"botResponse"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.SessionID == "" || req.SummarizedHistory == "" || req.BotResponse == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if err := ch.chatService.SaveSummary(c.Request.Context(), req.UserID, req.SessionID, req.SummarizedHistory, req.BotResponse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Summary saved successfully"})
}

func (ch *ChatHandler) GetActiveDays(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User email is required"})
		return
	}
	days, err := ch.chatService.ActiveDays(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeDays": days, "totalDays": len(days)})
}
