package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatSummary holds the model-produced summarized history for a
// session. The gateway saves these best-effort after responding and
// sends the most recent one back with the next model call.
type ChatSummary struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID            string    `gorm:"index:idx_chat_summary_lookup;not null" json:"userId"`
	SessionID         string    `gorm:"index:idx_chat_summary_lookup;not null" json:"sessionId"`
	SummarizedHistory string    `gorm:"column:summarized_history" json:"summarizedHistory"`
	BotResponse       string    `gorm:"column:bot_response" json:"botResponse"`
	Timestamp         time.Time `gorm:"not null" json:"timestamp"`
}

func (ChatSummary) TableName() string {
	return "chat_summary"
}
