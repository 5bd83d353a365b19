package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type ChatMessageRepo interface {
	Append(ctx context.Context, tx *gorm.DB, msg *types.ChatMessage) (*types.ChatMessage, error)
	GetBySession(ctx context.Context, tx *gorm.DB, sessionID, userID string) ([]*types.ChatMessage, error)
	DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID, userID string) error
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{
		db:  db,
		log: baseLog.With("repo", "ChatMessageRepo"),
	}
}

func (cmr *chatMessageRepo) Append(ctx context.Context, tx *gorm.DB, msg *types.ChatMessage) (*types.ChatMessage, error) {
	if tx == nil {
		tx = cmr.db
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if err := tx.WithContext(ctx).Create(msg).Error; err != nil {
		cmr.log.Error("failed to append chat message", "error", err)
		return nil, err
	}
	return msg, nil
}

func (cmr *chatMessageRepo) GetBySession(ctx context.Context, tx *gorm.DB, sessionID, userID string) ([]*types.ChatMessage, error) {
	if tx == nil {
		tx = cmr.db
	}
	var msgs []*types.ChatMessage
	if err := tx.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("timestamp ASC").
		Find(&msgs).Error; err != nil {
		cmr.log.Error("failed to get chat messages by sessionID", "error", err)
		return nil, err
	}
	return msgs, nil
}

func (cmr *chatMessageRepo) DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID, userID string) error {
	if tx == nil {
		tx = cmr.db
	}
	if err := tx.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Delete(&types.ChatMessage{}).Error; err != nil {
		cmr.log.Error("failed to delete chat messages by sessionID", "error", err)
		return err
	}
	return nil
}
