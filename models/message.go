package models

import (
	"time"
)

// MaxMessageLength caps chat message content.
const MaxMessageLength = 1000

type Message struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MatchID   uint       `gorm:"not null;index:idx_message_match_created" json:"match_id"`
	SenderID  uint       `gorm:"not null;index" json:"sender_id"`
	Content   string     `gorm:"size:1000;not null" json:"content"`
	Read      bool       `gorm:"default:false" json:"read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `gorm:"index:idx_message_match_created" json:"created_at"`

	Match  Match `gorm:"foreignKey:MatchID" json:"-"`
	Sender User  `gorm:"foreignKey:SenderID" json:"-"`
}
