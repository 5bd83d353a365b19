package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/handlers"
	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/server"
	"github.com/wellnest-app/wellnest-backend/internal/services"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full HTTP surface over an in-memory database
// and a stubbed model service.
func newTestRouter(t *testing.T, modelHandler http.HandlerFunc) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&types.ChatSession{},
		&types.ChatMessage{},
		&types.ArchivedChat{},
		&types.ChatSummary{},
		&types.CheckIn{},
		&types.MedicalProfile{},
		&types.HealthCondition{},
		&types.Medication{},
	))

	if modelHandler == nil {
		modelHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"response":"ok","summarized_history":""}`))
		}
	}
	srv := httptest.NewServer(modelHandler)
	t.Cleanup(srv.Close)
	t.Setenv("MODEL_API_URL", srv.URL)

	log, err := logger.New("development")
	require.NoError(t, err)

	sessionRepo := repos.NewChatSessionRepo(db, log)
	messageRepo := repos.NewChatMessageRepo(db, log)
	archiveRepo := repos.NewArchivedChatRepo(db, log)
	summaryRepo := repos.NewChatSummaryRepo(db, log)
	checkInRepo := repos.NewCheckInRepo(db, log)
	profileRepo := repos.NewMedicalProfileRepo(db, log)

	modelService := services.NewModelService(log)
	profileService := services.NewMedicalProfileService(log, profileRepo)
	chatService := services.NewChatService(db, log, sessionRepo, messageRepo, archiveRepo, summaryRepo, modelService, profileService)
	checkInService := services.NewCheckInService(log, checkInRepo)
	sleepRelay := services.NewSleepRelayService(log, modelService, nil)

	return server.NewRouter(server.RouterConfig{
		ChatHandler:           handlers.NewChatHandler(chatService, modelService, profileService, log),
		CheckInHandler:        handlers.NewCheckInHandler(checkInService, log),
		MedicalProfileHandler: handlers.NewMedicalProfileHandler(profileService, log),
		SleepHandler:          handlers.NewSleepHandler(sleepRelay, log),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func decodeRequest(t *testing.T, r *http.Request, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(out))
}
