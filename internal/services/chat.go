package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

// ErrUpstream marks a failed or timed-out call to the model service.
// The user message persisted before the call stands; no bot message is
// ever written on this path.
var ErrUpstream = errors.New("model call failed")

const (
	previewMaxLen   = 50
	archiveListCap  = 10
	fallbackBotText = "I'm not sure how to respond to that right now."
)

type SendMessageInput struct {
	UserID    string
	Message   string
	SessionID string
	Title     string
	Emotion   string
}

type SendMessageResult struct {
	SessionID string `json:"sessionId"`
	Response  string `json:"response"`
}

type ChatService interface {
	SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageResult, error)
	GetChat(ctx context.Context, sessionID, userID string) ([]*types.ChatMessage, error)
	GetUserSessions(ctx context.Context, userID string) ([]*types.ChatSession, error)
	DeleteChat(ctx context.Context, sessionID, userID string) error
	ClearChat(ctx context.Context, userID, sessionID string) error
	GetArchivedChats(ctx context.Context, userID string) ([]*types.ArchivedChat, error)
	SaveSummary(ctx context.Context, userID, sessionID, summarizedHistory, botResponse string) error
	ActiveDays(ctx context.Context, userID string) ([]string, error)
}

type chatService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.ChatSessionRepo
	messageRepo    repos.ChatMessageRepo
	archiveRepo    repos.ArchivedChatRepo
	summaryRepo    repos.ChatSummaryRepo
	modelService   ModelService
	profileService MedicalProfileService
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.ChatSessionRepo,
	messageRepo repos.ChatMessageRepo,
	archiveRepo repos.ArchivedChatRepo,
	summaryRepo repos.ChatSummaryRepo,
	modelService ModelService,
	profileService MedicalProfileService,
) ChatService {
	return &chatService{
		db:             db,
		log:            log.With("service", "ChatService"),
		sessionRepo:    sessionRepo,
		messageRepo:    messageRepo,
		archiveRepo:    archiveRepo,
		summaryRepo:    summaryRepo,
		modelService:   modelService,
		profileService: profileService,
	}
}

// SendMessage runs one request through the gateway sequence: ensure the
// session exists, persist the user message, call the model with the
// assembled context, persist the bot reply, then hand the summary save
// off to a detached goroutine.
func (cs *chatService) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	preview := truncatePreview(in.Message)

	session, err := cs.sessionRepo.GetBySessionAndUser(ctx, nil, in.SessionID, in.UserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		title := in.Title
		if title == "" {
			title = types.DefaultSessionTitle
		}
		if _, err := cs.sessionRepo.Create(ctx, nil, &types.ChatSession{
			SessionID: in.SessionID,
			UserID:    in.UserID,
			Title:     title,
			Preview:   preview,
		}); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		// The title is customized at most once: only while it still
		// carries the placeholder.
		if in.Title != "" && session.Title == types.DefaultSessionTitle {
			if err := cs.sessionRepo.UpdateTitleAndPreview(ctx, nil, session.ID, in.Title, preview); err != nil {
				return nil, err
			}
		}
	}

	if _, err := cs.messageRepo.Append(ctx, nil, &types.ChatMessage{
		SessionID: in.SessionID,
		UserID:    in.UserID,
		Text:      in.Message,
		Sender:    types.SenderUser,
		Timestamp: time.Now(),
	}); err != nil {
		return nil, err
	}

	historySummary := ""
	latest, err := cs.summaryRepo.GetLatest(ctx, nil, in.UserID, in.SessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if latest != nil {
		historySummary = latest.SummarizedHistory
	}

	healthContext, _, err := cs.profileService.HealthContext(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	modelResp, err := cs.modelService.Chat(ctx, ModelRequest{
		Message:        in.Message,
		UserID:         in.UserID,
		SessionID:      in.SessionID,
		Emotion:        in.Emotion,
		HistorySummary: historySummary,
		HealthContext:  healthContext,
	})
	if err != nil {
		cs.log.Warn("model call failed, user message retained", "sessionID", in.SessionID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	botText := modelResp.Response
	if botText == "" {
		botText = fallbackBotText
	}
	if _, err := cs.messageRepo.Append(ctx, nil, &types.ChatMessage{
		SessionID: in.SessionID,
		UserID:    in.UserID,
		Text:      botText,
		Sender:    types.SenderBot,
		Timestamp: time.Now(),
	}); err != nil {
		return nil, err
	}

	if modelResp.SummarizedHistory != "" {
		// Best-effort, decoupled from the response already built; a
		// failure here is logged and nothing else.
		go cs.saveSummaryDetached(in.UserID, in.SessionID, modelResp.SummarizedHistory, botText)
	}

	return &SendMessageResult{SessionID: in.SessionID, Response: botText}, nil
}

func (cs *chatService) saveSummaryDetached(userID, sessionID, summarizedHistory, botResponse string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cs.summaryRepo.Create(ctx, nil, &types.ChatSummary{
		UserID:            userID,
		SessionID:         sessionID,
		SummarizedHistory: summarizedHistory,
		BotResponse:       botResponse,
	}); err != nil {
		cs.log.Warn("failed to save summarized history", "sessionID", sessionID, "error", err)
	}
}

func (cs *chatService) GetChat(ctx context.Context, sessionID, userID string) ([]*types.ChatMessage, error) {
	return cs.messageRepo.GetBySession(ctx, nil, sessionID, userID)
}

func (cs *chatService) GetUserSessions(ctx context.Context, userID string) ([]*types.ChatSession, error) {
	return cs.sessionRepo.GetUserSessions(ctx, nil, userID)
}

// DeleteChat removes the session record and its live messages together.
func (cs *chatService) DeleteChat(ctx context.Context, sessionID, userID string) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.sessionRepo.Delete(ctx, tx, sessionID, userID); err != nil {
			return err
		}
		return cs.messageRepo.DeleteBySession(ctx, tx, sessionID, userID)
	})
}

// ClearChat snapshots a non-empty transcript into the archive, then
// empties the live log. The session row is untouched so the client
// keeps using the same session id. Two racing clears may both archive
// the same snapshot; that is tolerated since archiving is additive and
// the truncation is idempotent.
func (cs *chatService) ClearChat(ctx context.Context, userID, sessionID string) error {
	msgs, err := cs.messageRepo.GetBySession(ctx, nil, sessionID, userID)
	if err != nil {
		return err
	}

	if len(msgs) > 0 {
		snapshot := make([]types.ArchivedMessage, 0, len(msgs))
		for _, m := range msgs {
			snapshot = append(snapshot, types.ArchivedMessage{
				Text:      m.Text,
				Sender:    m.Sender,
				Timestamp: m.Timestamp,
			})
		}
		if _, err := cs.archiveRepo.Create(ctx, nil, &types.ArchivedChat{
			SessionID:         sessionID,
			UserID:            userID,
			Messages:          snapshot,
			ArchivedAt:        time.Now(),
			OriginalCreatedAt: msgs[0].Timestamp,
		}); err != nil {
			return err
		}
		cs.log.Info("archived chat messages before clear", "sessionID", sessionID, "count", len(msgs))
	}

	return cs.messageRepo.DeleteBySession(ctx, nil, sessionID, userID)
}

func (cs *chatService) GetArchivedChats(ctx context.Context, userID string) ([]*types.ArchivedChat, error) {
	return cs.archiveRepo.GetUserArchives(ctx, nil, userID, archiveListCap)
}

func (cs *chatService) SaveSummary(ctx context.Context, userID, sessionID, summarizedHistory, botResponse string) error {
	_, err := cs.summaryRepo.Create(ctx, nil, &types.ChatSummary{
		UserID:            userID,
		SessionID:         sessionID,
		SummarizedHistory: summarizedHistory,
		BotResponse:       botResponse,
	})
	return err
}

// ActiveDays returns the distinct calendar days on which the user
// started a session.
func (cs *chatService) ActiveDays(ctx context.Context, userID string) ([]string, error) {
	sessions, err := cs.sessionRepo.GetUserSessions(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(sessions))
	days := make([]string, 0, len(sessions))
	for _, s := range sessions {
		day := s.CreatedAt.Format("2006-01-02")
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

func truncatePreview(message string) string {
	runes := []rune(message)
	if len(runes) <= previewMaxLen {
		return message
	}
	return string(runes[:previewMaxLen]) + "..."
}
