package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ArchivedMessage is the frozen form a live message takes inside an
// archive snapshot.
type ArchivedMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ArchivedChat is a snapshot of a session's messages taken at clear
// time. It is created once per clear event and never mutated, so the
// chatbot keeps its long-term memory even after the visible transcript
// is emptied. A session can accumulate many of these.
type ArchivedChat struct {
	ID                uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"-"`
	SessionID         string                              `gorm:"index;not null" json:"sessionId"`
	UserID            string                              `gorm:"index:idx_archived_chat_user;not null" json:"userId"`
	Messages          datatypes.JSONSlice[ArchivedMessage] `gorm:"column:messages" json:"messages"`
	ArchivedAt        time.Time                           `gorm:"index:idx_archived_chat_user;not null" json:"archivedAt"`
	OriginalCreatedAt time.Time                           `json:"originalCreatedAt"`
}

func (ArchivedChat) TableName() string {
	return "archived_chat"
}
