package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type CheckInRepo interface {
	// Create inserts the check-in unless one already exists for the same
	// (user, date). The bool reports whether a new row was written; a
	// duplicate day is a benign outcome, not an error.
	Create(ctx context.Context, tx *gorm.DB, checkIn *types.CheckIn) (bool, error)
	GetByUserDesc(ctx context.Context, tx *gorm.DB, userID string) ([]*types.CheckIn, error)
	GetByUserBetween(ctx context.Context, tx *gorm.DB, userID string, start, end time.Time) ([]*types.CheckIn, error)
}

type checkInRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
	return &checkInRepo{
		db:  db,
		log: baseLog.With("repo", "CheckInRepo"),
	}
}

func (cir *checkInRepo) Create(ctx context.Context, tx *gorm.DB, checkIn *types.CheckIn) (bool, error) {
	if tx == nil {
		tx = cir.db
	}
	if checkIn.ID == uuid.Nil {
		checkIn.ID = uuid.New()
	}
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now()
	}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "check_in_date"}},
			DoNothing: true,
		}).
		Create(checkIn)
	if res.Error != nil {
		cir.log.Error("failed to create check-in", "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (cir *checkInRepo) GetByUserDesc(ctx context.Context, tx *gorm.DB, userID string) ([]*types.CheckIn, error) {
	if tx == nil {
		tx = cir.db
	}
	var checkIns []*types.CheckIn
	if err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in_date DESC").
		Find(&checkIns).Error; err != nil {
		cir.log.Error("failed to get check-ins", "error", err)
		return nil, err
	}
	return checkIns, nil
}

func (cir *checkInRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID string, start, end time.Time) ([]*types.CheckIn, error) {
	if tx == nil {
		tx = cir.db
	}
	var checkIns []*types.CheckIn
	if err := tx.WithContext(ctx).
		Where("user_id = ? AND check_in_date >= ? AND check_in_date <= ?", userID, start, end).
		Order("check_in_date ASC").
		Find(&checkIns).Error; err != nil {
		cir.log.Error("failed to get check-ins for range", "error", err)
		return nil, err
	}
	return checkIns, nil
}
