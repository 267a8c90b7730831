package models

import (
	"time"
)

// TemporaryTokenTTL is how long a registration token stays valid after the
// credential was verified.
const TemporaryTokenTTL = 30 * time.Minute

// TemporaryToken bridges credential verification and account creation.
// It is single-use: Used flips to true inside the registration transaction.
type TemporaryToken struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Token         string    `gorm:"uniqueIndex;size:100;not null" json:"-"`
	CampusCode    string    `gorm:"size:12;not null" json:"-"`
	FullName      string    `gorm:"size:200" json:"full_name"`
	Validity      string    `gorm:"size:50" json:"validity"`
	CredentialURL string    `gorm:"size:500" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	Used          bool      `gorm:"default:false" json:"used"`
}

// Expired reports whether the token is past its validity window.
func (t *TemporaryToken) Expired() bool {
	return time.Now().After(t.CreatedAt.Add(TemporaryTokenTTL))
}
