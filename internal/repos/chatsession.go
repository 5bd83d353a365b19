package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type ChatSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.ChatSession) (*types.ChatSession, error)
	GetBySessionAndUser(ctx context.Context, tx *gorm.DB, sessionID, userID string) (*types.ChatSession, error)
	GetUserSessions(ctx context.Context, tx *gorm.DB, userID string) ([]*types.ChatSession, error)
	UpdateTitleAndPreview(ctx context.Context, tx *gorm.DB, id uuid.UUID, title, preview string) error
	Delete(ctx context.Context, tx *gorm.DB, sessionID, userID string) error
}

type chatSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, baseLog *logger.Logger) ChatSessionRepo {
	return &chatSessionRepo{
		db:  db,
		log: baseLog.With("repo", "ChatSessionRepo"),
	}
}

func (csr *chatSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ChatSession) (*types.ChatSession, error) {
	if tx == nil {
		tx = csr.db
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.LastUpdated.IsZero() {
		session.LastUpdated = now
	}
	if session.Title == "" {
		session.Title = types.DefaultSessionTitle
	}
	if err := tx.WithContext(ctx).Create(session).Error; err != nil {
		csr.log.Error("failed to create chat session", "error", err)
		return nil, err
	}
	return session, nil
}

func (csr *chatSessionRepo) GetBySessionAndUser(ctx context.Context, tx *gorm.DB, sessionID, userID string) (*types.ChatSession, error) {
	if tx == nil {
		tx = csr.db
	}
	var s types.ChatSession
	if err := tx.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (csr *chatSessionRepo) GetUserSessions(ctx context.Context, tx *gorm.DB, userID string) ([]*types.ChatSession, error) {
	if tx == nil {
		tx = csr.db
	}
	var sessions []*types.ChatSession
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_updated DESC").
		Find(&sessions).Error; err != nil {
		csr.log.Error("failed to get user sessions", "error", err)
		return nil, err
	}
	return sessions, nil
}

func (csr *chatSessionRepo) UpdateTitleAndPreview(ctx context.Context, tx *gorm.DB, id uuid.UUID, title, preview string) error {
	if tx == nil {
		tx = csr.db
	}
	if err := tx.WithContext(ctx).
		Model(&types.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":        title,
			"preview":      preview,
			"last_updated": time.Now(),
		}).Error; err != nil {
		csr.log.Error("failed to update chat session title", "error", err)
		return err
	}
	return nil
}

func (csr *chatSessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionID, userID string) error {
	if tx == nil {
		tx = csr.db
	}
	if err := tx.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Delete(&types.ChatSession{}).Error; err != nil {
		csr.log.Error("failed to delete chat session", "error", err)
		return err
	}
	return nil
}
