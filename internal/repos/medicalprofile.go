package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type MedicalProfileRepo interface {
	// GetOrCreate returns the user's profile, lazily creating an empty
	// one on first access. Safe to call on every page load.
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID string) (*types.MedicalProfile, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID string) (*types.MedicalProfile, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, updates map[string]interface{}) error
	ReplaceConditions(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, conditions []types.HealthCondition) error
	ReplaceMedications(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, medications []types.Medication) error
	AddCondition(ctx context.Context, tx *gorm.DB, condition *types.HealthCondition) error
	RemoveCondition(ctx context.Context, tx *gorm.DB, profileID, conditionID uuid.UUID) error
	AddMedication(ctx context.Context, tx *gorm.DB, medication *types.Medication) error
	RemoveMedication(ctx context.Context, tx *gorm.DB, profileID, medicationID uuid.UUID) error
}

type medicalProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMedicalProfileRepo(db *gorm.DB, baseLog *logger.Logger) MedicalProfileRepo {
	return &medicalProfileRepo{
		db:  db,
		log: baseLog.With("repo", "MedicalProfileRepo"),
	}
}

func (mpr *medicalProfileRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID string) (*types.MedicalProfile, error) {
	profile, err := mpr.GetByUser(ctx, tx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if tx == nil {
		tx = mpr.db
	}
	fresh := &types.MedicalProfile{
		ID:          uuid.New(),
		UserID:      userID,
		LastUpdated: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(fresh).Error; err != nil {
		mpr.log.Error("failed to create medical profile", "error", err)
		return nil, err
	}
	normalizeProfile(fresh)
	return fresh, nil
}

func (mpr *medicalProfileRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID string) (*types.MedicalProfile, error) {
	if tx == nil {
		tx = mpr.db
	}
	var p types.MedicalProfile
	if err := tx.WithContext(ctx).
		Preload("HealthConditions", func(db *gorm.DB) *gorm.DB { return db.Order("added_at ASC") }).
		Preload("Medications", func(db *gorm.DB) *gorm.DB { return db.Order("added_at ASC") }).
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, err
	}
	normalizeProfile(&p)
	return &p, nil
}

// normalizeProfile keeps empty sub-sequences rendering as [] rather
// than null in API responses.
func normalizeProfile(p *types.MedicalProfile) {
	if p.HealthConditions == nil {
		p.HealthConditions = []types.HealthCondition{}
	}
	if p.Medications == nil {
		p.Medications = []types.Medication{}
	}
	if p.Allergies == nil {
		p.Allergies = datatypes.JSONSlice[string]{}
	}
}

func (mpr *medicalProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, updates map[string]interface{}) error {
	if tx == nil {
		tx = mpr.db
	}
	updates["last_updated"] = time.Now()
	if err := tx.WithContext(ctx).
		Model(&types.MedicalProfile{}).
		Where("id = ?", profileID).
		Updates(updates).Error; err != nil {
		mpr.log.Error("failed to update medical profile fields", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) ReplaceConditions(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, conditions []types.HealthCondition) error {
	if tx == nil {
		tx = mpr.db
	}
	if err := tx.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&types.HealthCondition{}).Error; err != nil {
		mpr.log.Error("failed to clear health conditions", "error", err)
		return err
	}
	if len(conditions) == 0 {
		return nil
	}
	for i := range conditions {
		if conditions[i].ID == uuid.Nil {
			conditions[i].ID = uuid.New()
		}
		conditions[i].ProfileID = profileID
		if conditions[i].AddedAt.IsZero() {
			conditions[i].AddedAt = time.Now()
		}
	}
	if err := tx.WithContext(ctx).Create(&conditions).Error; err != nil {
		mpr.log.Error("failed to replace health conditions", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) ReplaceMedications(ctx context.Context, tx *gorm.DB, profileID uuid.UUID, medications []types.Medication) error {
	if tx == nil {
		tx = mpr.db
	}
	if err := tx.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&types.Medication{}).Error; err != nil {
		mpr.log.Error("failed to clear medications", "error", err)
		return err
	}
	if len(medications) == 0 {
		return nil
	}
	for i := range medications {
		if medications[i].ID == uuid.Nil {
			medications[i].ID = uuid.New()
		}
		medications[i].ProfileID = profileID
		if medications[i].AddedAt.IsZero() {
			medications[i].AddedAt = time.Now()
		}
	}
	if err := tx.WithContext(ctx).Create(&medications).Error; err != nil {
		mpr.log.Error("failed to replace medications", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) AddCondition(ctx context.Context, tx *gorm.DB, condition *types.HealthCondition) error {
	if tx == nil {
		tx = mpr.db
	}
	if condition.ID == uuid.Nil {
		condition.ID = uuid.New()
	}
	if condition.AddedAt.IsZero() {
		condition.AddedAt = time.Now()
	}
	if err := tx.WithContext(ctx).Create(condition).Error; err != nil {
		mpr.log.Error("failed to add health condition", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) RemoveCondition(ctx context.Context, tx *gorm.DB, profileID, conditionID uuid.UUID) error {
	if tx == nil {
		tx = mpr.db
	}
	if err := tx.WithContext(ctx).
		Where("id = ? AND profile_id = ?", conditionID, profileID).
		Delete(&types.HealthCondition{}).Error; err != nil {
		mpr.log.Error("failed to remove health condition", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) AddMedication(ctx context.Context, tx *gorm.DB, medication *types.Medication) error {
	if tx == nil {
		tx = mpr.db
	}
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	if medication.AddedAt.IsZero() {
		medication.AddedAt = time.Now()
	}
	if err := tx.WithContext(ctx).Create(medication).Error; err != nil {
		mpr.log.Error("failed to add medication", "error", err)
		return err
	}
	return nil
}

func (mpr *medicalProfileRepo) RemoveMedication(ctx context.Context, tx *gorm.DB, profileID, medicationID uuid.UUID) error {
	if tx == nil {
		tx = mpr.db
	}
	if err := tx.WithContext(ctx).
		Where("id = ? AND profile_id = ?", medicationID, profileID).
		Delete(&types.Medication{}).Error; err != nil {
		mpr.log.Error("failed to remove medication", "error", err)
		return err
	}
	return nil
}
