package models

import (
	"time"
)

// MaxPhotosPerUser caps how many photos a profile can hold.
const MaxPhotosPerUser = 6

// Photo is one entry of a user's ordered photo set. Exactly one photo per
// user carries IsPrimary=true; the profile service enforces that inside the
// write transaction.
type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_photo_position" json:"user_id"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Position  int       `gorm:"not null;uniqueIndex:idx_photo_position" json:"position"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
