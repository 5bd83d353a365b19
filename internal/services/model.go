package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/utils"
)

// ModelService is the single outbound collaborator: the Python service
// that runs the LLM chat and the sleep-data analysis.
type ModelService interface {
	Chat(ctx context.Context, req ModelRequest) (*ModelResponse, error)
	RelayChat(ctx context.Context, payload map[string]interface{}) (json.RawMessage, error)
	ChatReport(ctx context.Context, userID, sessionID, summary string) (json.RawMessage, error)
	ForwardSleepData(ctx context.Context, sleepData interface{}) (json.RawMessage, error)
}

type ModelRequest struct {
	Message        string `json:"message"`
	UserID         string `json:"user_id"`
	SessionID      string `json:"sessionId"`
	Emotion        string `json:"emotion,omitempty"`
	HistorySummary string `json:"history_summary"`
	HealthContext  string `json:"health_context,omitempty"`
}

type ModelResponse struct {
	Response          string `json:"response"`
	SummarizedHistory string `json:"summarized_history,omitempty"`
}

type modelService struct {
	log     *logger.Logger
	client  *http.Client
	baseURL string
}

func NewModelService(log *logger.Logger) ModelService {
	serviceLog := log.With("service", "ModelService")
	baseURL := utils.GetEnv("MODEL_API_URL", "http://localhost:5000", log)
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	return &modelService{
		log:     serviceLog,
		client:  httpClient,
		baseURL: baseURL,
	}
}

func (ms *modelService) Chat(ctx context.Context, req ModelRequest) (*ModelResponse, error) {
	raw, err := ms.postJSON(ctx, "/api/chat", req)
	if err != nil {
		return nil, err
	}
	var out ModelResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		ms.log.Warn("failed to decode model chat response", "error", err)
		return nil, err
	}
	return &out, nil
}

func (ms *modelService) RelayChat(ctx context.Context, payload map[string]interface{}) (json.RawMessage, error) {
	return ms.postJSON(ctx, "/api/chat", payload)
}

func (ms *modelService) ChatReport(ctx context.Context, userID, sessionID, summary string) (json.RawMessage, error) {
	payload := map[string]string{
		"userId":    userID,
		"sessionId": sessionID,
		"summary":   summary,
	}
	return ms.postJSON(ctx, "/api/chatreport", payload)
}

func (ms *modelService) ForwardSleepData(ctx context.Context, sleepData interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(sleepData)
	if err != nil {
		return nil, err
	}
	// The model service expects the sleep payload stringified into the
	// generic message field.
	payload := map[string]string{"message": string(encoded)}
	return ms.postJSON(ctx, "/api/sleepdata", payload)
}

func (ms *modelService) postJSON(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ms.baseURL+path, bytes.NewReader(body))
	if err != nil {
		ms.log.Warn("failed to build model request", "path", path, "error", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ms.client.Do(req)
	if err != nil {
		ms.log.Warn("failed to call model service", "path", path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		ms.log.Warn("failed to read model response body", "path", path, "error", err)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ms.log.Warn("model service responded with non-2xx", "path", path, "statusCode", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("model service HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
