package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/repos"
	"github.com/wellnest-app/wellnest-backend/internal/types"
)

type UpdateProfileInput struct {
	HealthConditions []types.HealthCondition
	Medications      []types.Medication
	Allergies        []string
	BloodType        string
	EmergencyContact types.EmergencyContact
	Notes            string
}

type MedicalProfileService interface {
	GetProfile(ctx context.Context, userID string) (*types.MedicalProfile, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*types.MedicalProfile, error)
	AddCondition(ctx context.Context, userID, condition, severity string) (*types.MedicalProfile, error)
	RemoveCondition(ctx context.Context, userID string, conditionID uuid.UUID) (*types.MedicalProfile, error)
	AddMedication(ctx context.Context, userID, name, dosage, frequency string) (*types.MedicalProfile, error)
	RemoveMedication(ctx context.Context, userID string, medicationID uuid.UUID) (*types.MedicalProfile, error)
	// HealthContext returns the chatbot-facing context string, empty
	// when the user has no profile yet.
	HealthContext(ctx context.Context, userID string) (string, *types.MedicalProfile, error)
}

type medicalProfileService struct {
	log         *logger.Logger
	profileRepo repos.MedicalProfileRepo
}

func NewMedicalProfileService(log *logger.Logger, profileRepo repos.MedicalProfileRepo) MedicalProfileService {
	return &medicalProfileService{
		log:         log.With("service", "MedicalProfileService"),
		profileRepo: profileRepo,
	}
}

func (mps *medicalProfileService) GetProfile(ctx context.Context, userID string) (*types.MedicalProfile, error) {
	return mps.profileRepo.GetOrCreate(ctx, nil, userID)
}

// UpdateProfile replaces the whole document: scalar fields plus both
// sub-sequences.
func (mps *medicalProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*types.MedicalProfile, error) {
	profile, err := mps.profileRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if err := mps.profileRepo.UpdateFields(ctx, nil, profile.ID, map[string]interface{}{
		"allergies":              datatypes.NewJSONSlice(in.Allergies),
		"blood_type":             in.BloodType,
		"emergency_name":         in.EmergencyContact.Name,
		"emergency_phone":        in.EmergencyContact.Phone,
		"emergency_relationship": in.EmergencyContact.Relationship,
		"notes":                  in.Notes,
	}); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.ReplaceConditions(ctx, nil, profile.ID, in.HealthConditions); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.ReplaceMedications(ctx, nil, profile.ID, in.Medications); err != nil {
		return nil, err
	}
	mps.log.Info("medical profile updated", "userID", userID)
	return mps.profileRepo.GetByUser(ctx, nil, userID)
}

func (mps *medicalProfileService) AddCondition(ctx context.Context, userID, condition, severity string) (*types.MedicalProfile, error) {
	if severity == "" {
		severity = types.SeverityModerate
	}
	if severity != types.SeverityMild && severity != types.SeverityModerate && severity != types.SeveritySevere {
		return nil, fmt.Errorf("invalid severity %q", severity)
	}
	profile, err := mps.profileRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if err := mps.profileRepo.AddCondition(ctx, nil, &types.HealthCondition{
		ProfileID: profile.ID,
		Condition: condition,
		Severity:  severity,
	}); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.UpdateFields(ctx, nil, profile.ID, map[string]interface{}{}); err != nil {
		return nil, err
	}
	mps.log.Info("health condition added", "userID", userID, "condition", condition)
	return mps.profileRepo.GetByUser(ctx, nil, userID)
}

func (mps *medicalProfileService) RemoveCondition(ctx context.Context, userID string, conditionID uuid.UUID) (*types.MedicalProfile, error) {
	profile, err := mps.profileRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if err := mps.profileRepo.RemoveCondition(ctx, nil, profile.ID, conditionID); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.UpdateFields(ctx, nil, profile.ID, map[string]interface{}{}); err != nil {
		return nil, err
	}
	return mps.profileRepo.GetByUser(ctx, nil, userID)
}

func (mps *medicalProfileService) AddMedication(ctx context.Context, userID, name, dosage, frequency string) (*types.MedicalProfile, error) {
	profile, err := mps.profileRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if err := mps.profileRepo.AddMedication(ctx, nil, &types.Medication{
		ProfileID: profile.ID,
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
	}); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.UpdateFields(ctx, nil, profile.ID, map[string]interface{}{}); err != nil {
		return nil, err
	}
	mps.log.Info("medication added", "userID", userID, "name", name)
	return mps.profileRepo.GetByUser(ctx, nil, userID)
}

func (mps *medicalProfileService) RemoveMedication(ctx context.Context, userID string, medicationID uuid.UUID) (*types.MedicalProfile, error) {
	profile, err := mps.profileRepo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if err := mps.profileRepo.RemoveMedication(ctx, nil, profile.ID, medicationID); err != nil {
		return nil, err
	}
	if err := mps.profileRepo.UpdateFields(ctx, nil, profile.ID, map[string]interface{}{}); err != nil {
		return nil, err
	}
	return mps.profileRepo.GetByUser(ctx, nil, userID)
}

func (mps *medicalProfileService) HealthContext(ctx context.Context, userID string) (string, *types.MedicalProfile, error) {
	profile, err := mps.profileRepo.GetByUser(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return BuildContextString(profile), profile, nil
}

// BuildContextString flattens a profile into the free-text context the
// model consumes. Clauses with no data are omitted; the output is
// deterministic for a given profile.
func BuildContextString(profile *types.MedicalProfile) string {
	if profile == nil {
		return ""
	}
	var parts []string

	if len(profile.HealthConditions) > 0 {
		names := make([]string, 0, len(profile.HealthConditions))
		for _, c := range profile.HealthConditions {
			names = append(names, c.Condition)
		}
		parts = append(parts, "Health conditions: "+strings.Join(names, ", "))
	}
	if len(profile.Medications) > 0 {
		meds := make([]string, 0, len(profile.Medications))
		for _, m := range profile.Medications {
			meds = append(meds, fmt.Sprintf("%s (%s)", m.Name, m.Dosage))
		}
		parts = append(parts, "Current medications: "+strings.Join(meds, ", "))
	}
	if len(profile.Allergies) > 0 {
		parts = append(parts, "Allergies: "+strings.Join(profile.Allergies, ", "))
	}
	if profile.Notes != "" {
		parts = append(parts, "Additional notes: "+profile.Notes)
	}

	return strings.Join(parts, ". ")
}
