package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type ChatSummaryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, summary *types.ChatSummary) (*types.ChatSummary, error)
	GetLatest(ctx context.Context, tx *gorm.DB, userID, sessionID string) (*types.ChatSummary, error)
}

type chatSummaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSummaryRepo(db *gorm.DB, baseLog *logger.Logger) ChatSummaryRepo {
	return &chatSummaryRepo{
		db:  db,
		log: baseLog.With("repo", "ChatSummaryRepo"),
	}
}

func (csr *chatSummaryRepo) Create(ctx context.Context, tx *gorm.DB, summary *types.ChatSummary) (*types.ChatSummary, error) {
	if tx == nil {
		tx = csr.db
	}
	if summary.ID == uuid.Nil {
		summary.ID = uuid.New()
	}
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}
	if err := tx.WithContext(ctx).Create(summary).Error; err != nil {
		csr.log.Error("failed to create chat summary", "error", err)
		return nil, err
	}
	return summary, nil
}

// GetLatest returns gorm.ErrRecordNotFound when the session has no
// summary yet; callers treat that as an empty history.
func (csr *chatSummaryRepo) GetLatest(ctx context.Context, tx *gorm.DB, userID, sessionID string) (*types.ChatSummary, error) {
	if tx == nil {
		tx = csr.db
	}
	var s types.ChatSummary
	if err := tx.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("timestamp DESC").
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
