package services

import (
	"errors"
	"time"

	"campusmatch/models"

	"gorm.io/gorm"
)

// PublicUser is the profile projection other users see: no credential or
// contact data, just what a swipe card or chat header needs.
type PublicUser struct {
	ID        uint           `json:"id"`
	FullName  string         `json:"full_name"`
	Age       int            `json:"age,omitempty"`
	Gender    string         `json:"gender"`
	Major     string         `json:"major,omitempty"`
	Semester  *int           `json:"semester,omitempty"`
	Bio       string         `json:"bio"`
	Interests []string       `json:"interests"`
	Photos    []models.Photo `json:"photos"`
}

// MatchView is a match from one participant's viewpoint.
type MatchView struct {
	ID            uint       `json:"id"`
	User          PublicUser `json:"user"`
	UnreadCount   int64      `json:"unread_count"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ProjectUser assembles the public projection for a user id.
func ProjectUser(db *gorm.DB, userID uint) (*PublicUser, error) {
	var user models.User
	err := db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	view := PublicUser{
		ID:        user.ID,
		FullName:  user.FullName,
		Age:       user.Age(),
		Gender:    user.Gender,
		Major:     user.Major,
		Semester:  user.Semester,
		Interests: []string{},
		Photos:    user.Photos,
	}
	if view.Photos == nil {
		view.Photos = []models.Photo{}
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		applyProfile(&view, &profile)
	}

	return &view, nil
}

// ProjectUsers projects a candidate page in one profile query. Photos are
// expected to be preloaded on the users.
func ProjectUsers(db *gorm.DB, users []models.User) ([]PublicUser, error) {
	views := make([]PublicUser, 0, len(users))
	if len(users) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}

	var profiles []models.Profile
	if err := db.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	for i := range users {
		u := &users[i]
		view := PublicUser{
			ID:        u.ID,
			FullName:  u.FullName,
			Age:       u.Age(),
			Gender:    u.Gender,
			Major:     u.Major,
			Semester:  u.Semester,
			Interests: []string{},
			Photos:    u.Photos,
		}
		if view.Photos == nil {
			view.Photos = []models.Photo{}
		}
		if profile, ok := byUser[u.ID]; ok {
			applyProfile(&view, profile)
		}
		views = append(views, view)
	}
	return views, nil
}

func applyProfile(view *PublicUser, profile *models.Profile) {
	view.Bio = profile.Bio
	if profile.Interests != nil {
		view.Interests = profile.Interests
	}
	if !profile.ShowAge {
		view.Age = 0
	}
	if !profile.ShowMajor {
		view.Major = ""
		view.Semester = nil
	}
}

// buildMatchView projects match for the given viewer: the other user plus
// the viewer's unread count.
func buildMatchView(db *gorm.DB, match *models.Match, viewerID uint) (*MatchView, error) {
	other, err := ProjectUser(db, match.OtherUserID(viewerID))
	if err != nil {
		return nil, err
	}

	var unread int64
	err = db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id <> ? AND read = ?", match.ID, viewerID, false).
		Count(&unread).Error
	if err != nil {
		return nil, err
	}

	return &MatchView{
		ID:            match.ID,
		User:          *other,
		UnreadCount:   unread,
		LastMessageAt: match.LastMessageAt,
		CreatedAt:     match.CreatedAt,
	}, nil
}
