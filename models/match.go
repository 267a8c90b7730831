package models

import (
	"time"
)

// Match is a mutual-like pairing. Rows are stored canonically with
// UserAID < UserBID; together with the composite unique index this is
// what prevents duplicate matches when both users swipe at the same
// instant. Matches are deactivated, never deleted, so chat history
// survives an unmatch.
type Match struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserAID       uint       `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_a_id"`
	UserBID       uint       `gorm:"not null;uniqueIndex:idx_match_pair" json:"user_b_id"`
	Active        bool       `gorm:"index" json:"active"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	UserA User `gorm:"foreignKey:UserAID" json:"-"`
	UserB User `gorm:"foreignKey:UserBID" json:"-"`
}

// CanonicalPair orders two user ids so the lower one is stored first.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasUser reports whether userID is a participant of the match.
func (m *Match) HasUser(userID uint) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherUserID returns the participant that is not userID.
func (m *Match) OtherUserID(userID uint) uint {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
