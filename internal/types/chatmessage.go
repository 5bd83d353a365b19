package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry in the live, visible transcript of a
// session. Rows are append-only during normal chat; a "clear" archives
// and then deletes them.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	SessionID string    `gorm:"index:idx_chat_message_session;not null" json:"sessionId"`
	UserID    string    `gorm:"index:idx_chat_message_session;not null" json:"userId"`
	Text      string    `gorm:"column:text" json:"text"`
	Sender    string    `gorm:"column:sender" json:"sender"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
