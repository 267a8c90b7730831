package services

import (
	"errors"
	"time"

	"campusmatch/config"
	"campusmatch/models"
	"campusmatch/utils"

	"gorm.io/gorm"
)

// RegisterInput carries the fields the user fills in after their credential
// was verified. Identity fields (name, campus code, credential URL) come
// from the token record, never from the client.
type RegisterInput struct {
	Token     string
	Email     string
	Username  string
	Password  string
	BirthDate *time.Time
	Gender    string
	Seeking   string
	Major     string
	Semester  *int
	Bio       string
}

// RegisterAccount consumes a valid registration token and provisions the
// account: user, token mark-used and seeded profile commit in one
// transaction. Validation failures leave the token unused so the user can
// fix the offending field and retry.
func RegisterAccount(input RegisterInput) (*models.User, error) {
	var token models.TemporaryToken
	err := config.DB.Where("token = ? AND used = ?", input.Token, false).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if token.Expired() {
		return nil, ErrTokenExpired
	}

	if err := utils.ValidatePassword(input.Password); err != nil {
		return nil, ErrWeakPassword
	}

	if taken, err := userFieldTaken("email", input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateFieldError{Field: "email"}
	}
	if taken, err := userFieldTaken("username", input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateFieldError{Field: "username"}
	}
	if taken, err := userFieldTaken("credential_url", token.CredentialURL); err != nil {
		return nil, err
	} else if taken {
		return nil, &DuplicateFieldError{Field: "credential"}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:        input.Username,
		Email:           input.Email,
		PasswordHash:    hashed,
		FullName:        token.FullName,
		CampusCode:      token.CampusCode,
		CredentialURL:   token.CredentialURL,
		Validity:        token.Validity,
		BirthDate:       input.BirthDate,
		Gender:          input.Gender,
		Seeking:         input.Seeking,
		Major:           input.Major,
		Semester:        input.Semester,
		Verified:        true,
		Active:          true,
		ProfileComplete: true,
		LastActiveAt:    time.Now(),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TemporaryToken{}).
			Where("id = ?", token.ID).
			Update("used", true).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID, Bio: input.Bio}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race on one of the unique user columns.
			return nil, &DuplicateFieldError{Field: "account"}
		}
		return nil, err
	}

	return &user, nil
}

func userFieldTaken(column, value string) (bool, error) {
	var count int64
	err := config.DB.Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}
