package models

import (
	"time"
)

// Gender / seeking choices
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	SeekingMen      = "men"
	SeekingWomen    = "women"
	SeekingEveryone = "everyone"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:200" json:"full_name"`

	// Campus credential data, copied from the registration token
	CampusCode    string `gorm:"uniqueIndex;size:12;not null" json:"-"`
	CredentialURL string `gorm:"uniqueIndex;size:500;not null" json:"-"`
	Validity      string `gorm:"size:50" json:"-"` // e.g. "ENE-2026"

	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `gorm:"size:10" json:"gender"`
	Seeking   string     `gorm:"size:10;default:everyone" json:"seeking"`
	Major     string     `gorm:"size:200" json:"major"`
	Semester  *int       `json:"semester"`

	// Account state. Users are never hard-deleted, only flagged.
	// No column defaults here: a "default:true" tag would make gorm
	// skip explicit false values on insert.
	Verified        bool `json:"verified"`
	Active          bool `json:"active"`
	ProfileComplete bool `json:"profile_complete"`

	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Photos []Photo `gorm:"foreignKey:UserID" json:"photos,omitempty"`
}

// Age returns the user's age in full years, or 0 when the birth date is unset.
func (u *User) Age() int {
	if u.BirthDate == nil {
		return 0
	}
	now := time.Now()
	age := now.Year() - u.BirthDate.Year()
	if now.Month() < u.BirthDate.Month() ||
		(now.Month() == u.BirthDate.Month() && now.Day() < u.BirthDate.Day()) {
		age--
	}
	return age
}

// SoughtGenders expands the seeking preference into the set of genders
// candidate queries filter on.
func (u *User) SoughtGenders() []string {
	switch u.Seeking {
	case SeekingMen:
		return []string{GenderMale}
	case SeekingWomen:
		return []string{GenderFemale}
	case SeekingEveryone:
		return []string{GenderMale, GenderFemale, GenderOther}
	}
	return []string{}
}
