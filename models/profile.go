package models

import (
	"time"
)

type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Bio       string   `gorm:"size:500" json:"bio"`
	Interests []string `gorm:"serializer:json" json:"interests"`

	// Preference bounds for future filtering
	MaxDistanceKm int `gorm:"default:50" json:"max_distance_km"`
	MinAge        int `gorm:"default:18" json:"min_age"`
	MaxAge        int `gorm:"default:30" json:"max_age"`

	ShowAge   bool `gorm:"default:true" json:"show_age"`
	ShowMajor bool `gorm:"default:true" json:"show_major"`

	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// AvailableInterests is the predefined set profiles pick from.
var AvailableInterests = []string{
	"Sports",
	"Music",
	"Movies",
	"Series",
	"Video games",
	"Reading",
	"Art",
	"Photography",
	"Travel",
	"Cooking",
	"Fitness",
	"Yoga",
	"Dance",
	"Technology",
	"Programming",
	"Science",
	"Nature",
	"Pets",
	"Coffee",
	"Parties",
	"Anime",
	"Memes",
	"Chess",
}
