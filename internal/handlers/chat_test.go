package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbotEndpointRoundTrip(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId":    "a@x.com",
		"message":   "hello",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Response  string `json:"response"`
		SessionID string `json:"sessionId"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Response)
	assert.Equal(t, "s1", resp.SessionID)

	rec = doJSON(t, router, http.MethodGet, "/api/chat/s1?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chat struct {
		Messages []struct {
			Text   string `json:"text"`
			Sender string `json:"sender"`
		} `json:"messages"`
	}
	decodeBody(t, rec, &chat)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "hello", chat.Messages[0].Text)
	assert.Equal(t, "user", chat.Messages[0].Sender)
	assert.Equal(t, "bot", chat.Messages[1].Sender)
}

func TestChatbotEndpointRejectsMissingFields(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Missing required fields", resp.Error)
}

func TestChatbotEndpointModelFailure(t *testing.T) {
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId":    "a@x.com",
		"message":   "hello",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Failed to process chatbot response", resp.Error)
}

func TestClearThenArchivedScenario(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId":    "a@x.com",
		"message":   "remember this",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/chat/clear", map[string]string{
		"userId":    "a@x.com",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &cleared)
	assert.True(t, cleared.Success)
	assert.Equal(t, "Chat cleared successfully. Chatbot memory retained.", cleared.Message)

	rec = doJSON(t, router, http.MethodGet, "/api/chat/s1?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chat struct {
		Messages []interface{} `json:"messages"`
	}
	decodeBody(t, rec, &chat)
	assert.Empty(t, chat.Messages)

	rec = doJSON(t, router, http.MethodGet, "/api/chat/archived?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var archives []struct {
		SessionID string `json:"sessionId"`
		Messages  []struct {
			Text string `json:"text"`
		} `json:"messages"`
	}
	decodeBody(t, rec, &archives)
	require.Len(t, archives, 1)
	assert.Equal(t, "s1", archives[0].SessionID)
	require.Len(t, archives[0].Messages, 2)
	assert.Equal(t, "remember this", archives[0].Messages[0].Text)
}

func TestDeleteChatEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId":    "a@x.com",
		"message":   "hi",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/chat/s1", map[string]string{
		"userId": "a@x.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/sessions?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []interface{}
	decodeBody(t, rec, &sessions)
	assert.Empty(t, sessions)
}

func TestSessionsEndpointShape(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot", map[string]string{
		"userId":    "a@x.com",
		"message":   "a fairly long message that should be truncated into the preview text shown in the sidebar",
		"sessionId": "s1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/sessions?userId=a@x.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Preview string `json:"preview"`
	}
	decodeBody(t, rec, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].ID)
	assert.Equal(t, "New Chat", sessions[0].Title)
	assert.Equal(t, "a fairly long message that should be truncated int...", sessions[0].Preview)
}

func TestSaveSummaryEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/saveSummary", map[string]string{
		"userId":            "a@x.com",
		"sessionId":         "s1",
		"summarizedHistory": "talked about sleep",
		"botResponse":       "try a routine",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/saveSummary", map[string]string{
		"userId": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelayEndpointInjectsHealthContext(t *testing.T) {
	var forwarded map[string]interface{}
	router := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		decodeRequest(t, r, &forwarded)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"relayed"}`))
	})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]string{
		"userId":         "nobody@x.com",
		"message":        "hi",
		"fitnessContext": "slept 6h",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"relayed"}`, rec.Body.String())
	assert.Equal(t, "No medical profile available. Fitness data: slept 6h", forwarded["healthContext"])
}
