package services

import (
	"errors"
	"time"

	"campusmatch/config"
	"campusmatch/models"
	"campusmatch/utils"

	"gorm.io/gorm"
)

// AuthenticateUser checks the credentials against active accounts and
// issues a session token pair. Activity is touched on every login.
func AuthenticateUser(email, password string) (*models.User, *utils.TokenPair, error) {
	var user models.User
	err := config.DB.Where("email = ? AND active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, nil, errors.New("invalid email or password")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, errors.New("invalid email or password")
	}

	if err := TouchActivity(user.ID); err != nil {
		return nil, nil, err
	}

	pair, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// FindUserByID loads a user regardless of state; the auth middleware and
// self-service endpoints use it.
func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindVisibleUser loads a verified, active user for public profile views.
func FindVisibleUser(id uint) (*models.User, error) {
	var user models.User
	err := config.DB.Where("id = ? AND verified = ? AND active = ?", id, true, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput carries the self-editable demographic fields.
type UpdateUserInput struct {
	BirthDate *time.Time
	Gender    *string
	Seeking   *string
	Major     *string
	Semester  *int
}

// UpdateUser applies the demographic changes to the caller's account.
func UpdateUser(userID uint, input UpdateUserInput) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Seeking != nil {
		user.Seeking = *input.Seeking
	}
	if input.Major != nil {
		user.Major = *input.Major
	}
	if input.Semester != nil {
		user.Semester = input.Semester
	}

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// TouchActivity bumps the freshness timestamp the candidate ordering uses.
func TouchActivity(userID uint) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_active_at", time.Now()).Error
}
