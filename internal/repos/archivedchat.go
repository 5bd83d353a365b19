package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type ArchivedChatRepo interface {
	Create(ctx context.Context, tx *gorm.DB, archive *types.ArchivedChat) (*types.ArchivedChat, error)
	GetUserArchives(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.ArchivedChat, error)
}

type archivedChatRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewArchivedChatRepo(db *gorm.DB, baseLog *logger.Logger) ArchivedChatRepo {
	return &archivedChatRepo{
		db:  db,
		log: baseLog.With("repo", "ArchivedChatRepo"),
	}
}

func (acr *archivedChatRepo) Create(ctx context.Context, tx *gorm.DB, archive *types.ArchivedChat) (*types.ArchivedChat, error) {
	if tx == nil {
		tx = acr.db
	}
	if archive.ID == uuid.Nil {
		archive.ID = uuid.New()
	}
	if archive.ArchivedAt.IsZero() {
		archive.ArchivedAt = time.Now()
	}
	if err := tx.WithContext(ctx).Create(archive).Error; err != nil {
		acr.log.Error("failed to create archived chat", "error", err)
		return nil, err
	}
	return archive, nil
}

func (acr *archivedChatRepo) GetUserArchives(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.ArchivedChat, error) {
	if tx == nil {
		tx = acr.db
	}
	var archives []*types.ArchivedChat
	q := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("archived_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&archives).Error; err != nil {
		acr.log.Error("failed to get archived chats", "error", err)
		return nil, err
	}
	return archives, nil
}
