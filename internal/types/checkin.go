package types

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn marks one user as active on one calendar day. CheckInDate is
// always truncated to midnight server-local time; the composite unique
// index is what enforces "at most one per user per day".
type CheckIn struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID      string    `gorm:"uniqueIndex:idx_check_in_user_date;not null" json:"userId"`
	CheckInDate time.Time `gorm:"uniqueIndex:idx_check_in_user_date;not null" json:"checkInDate"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (CheckIn) TableName() string {
	return "check_in"
}
