package types

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTitle = "New Chat"

// ChatSession groups one conversation. SessionID is the opaque id the
// client generates; one (session_id, user_id) pair owns one chat log.
type ChatSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	SessionID   string    `gorm:"uniqueIndex:idx_chat_session_user;not null" json:"sessionId"`
	UserID      string    `gorm:"uniqueIndex:idx_chat_session_user;index;not null" json:"userId"`
	Title       string    `gorm:"column:title" json:"title"`
	Preview     string    `gorm:"column:preview" json:"preview"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	LastUpdated time.Time `gorm:"not null" json:"lastUpdated"`
}

func (ChatSession) TableName() string {
	return "chat_session"
}
