package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// MedicalProfile is the per-user structured health document the
// chatbot draws context from. One per user, created lazily on first
// read or write.
type MedicalProfile struct {
	ID               uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"-"`
	UserID           string                       `gorm:"uniqueIndex;not null" json:"userId"`
	HealthConditions []HealthCondition            `gorm:"foreignKey:ProfileID" json:"healthConditions"`
	Medications      []Medication                 `gorm:"foreignKey:ProfileID" json:"medications"`
	Allergies        datatypes.JSONSlice[string]  `gorm:"column:allergies" json:"allergies"`
	BloodType        string                       `gorm:"column:blood_type" json:"bloodType"`
	EmergencyContact EmergencyContact             `gorm:"embedded;embeddedPrefix:emergency_" json:"emergencyContact"`
	Notes            string                       `gorm:"column:notes" json:"notes"`
	LastUpdated      time.Time                    `gorm:"not null" json:"lastUpdated"`
}

func (MedicalProfile) TableName() string {
	return "medical_profile"
}

type HealthCondition struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Condition string    `gorm:"column:condition" json:"condition"`
	Severity  string    `gorm:"column:severity" json:"severity"`
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`
}

func (HealthCondition) TableName() string {
	return "health_condition"
}

type Medication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Name      string    `gorm:"column:name" json:"name"`
	Dosage    string    `gorm:"column:dosage" json:"dosage"`
	Frequency string    `gorm:"column:frequency" json:"frequency"`
	AddedAt   time.Time `gorm:"not null" json:"addedAt"`
}

func (Medication) TableName() string {
	return "medication"
}
