package services

import (
	"errors"
	"fmt"

	"campusmatch/config"
	"campusmatch/models"
	"campusmatch/utils"

	"gorm.io/gorm"
)

// IssuedToken is the outcome of a successful credential verification:
// the data shown back to the user plus the single-use registration token.
type IssuedToken struct {
	Token     string `json:"token"`
	FullName  string `json:"full_name"`
	Validity  string `json:"validity"`
	ExpiresIn int    `json:"expires_in"`
}

// IssueRegistrationToken verifies the credential URL and, when the
// credential is valid and not yet bound to an account, persists a fresh
// TemporaryToken for the registration step.
func IssueRegistrationToken(credentialURL string) (*IssuedToken, error) {
	info, err := VerifyCredential(credentialURL)
	if err != nil {
		return nil, err
	}

	campusCode := utils.CampusCodeFromURL(credentialURL)
	if campusCode == "" {
		return nil, &CredentialError{
			Reason:  CredentialUnparseable,
			Message: "credential URL carries no unique token",
		}
	}

	var existing models.User
	err = config.DB.Where("campus_code = ?", campusCode).First(&existing).Error
	if err == nil {
		return nil, ErrCredentialTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token, err := utils.GenerateRegistrationToken()
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	record := models.TemporaryToken{
		Token:         token,
		CampusCode:    campusCode,
		FullName:      info.FullName,
		Validity:      info.Validity,
		CredentialURL: credentialURL,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     token,
		FullName:  info.FullName,
		Validity:  info.Validity,
		ExpiresIn: int(models.TemporaryTokenTTL.Seconds()),
	}, nil
}
