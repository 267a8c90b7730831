package services

import (
	"errors"

	"campusmatch/config"
	"campusmatch/models"

	"gorm.io/gorm"
)

// GetProfile returns the user's profile, creating the empty row when the
// user predates the profile table.
func GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		err = config.DB.Create(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfileInput carries the self-service profile fields; nil pointers
// leave the stored value untouched.
type UpdateProfileInput struct {
	Bio           *string
	Interests     *[]string
	MaxDistanceKm *int
	MinAge        *int
	MaxAge        *int
	ShowAge       *bool
	ShowMajor     *bool
}

// UpdateProfile applies the changes and recomputes the user's
// profile-complete flag.
func UpdateProfile(userID uint, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Interests != nil {
		profile.Interests = *input.Interests
	}
	if input.MaxDistanceKm != nil {
		profile.MaxDistanceKm = *input.MaxDistanceKm
	}
	if input.MinAge != nil {
		profile.MinAge = *input.MinAge
	}
	if input.MaxAge != nil {
		profile.MaxAge = *input.MaxAge
	}
	if input.ShowAge != nil {
		profile.ShowAge = *input.ShowAge
	}
	if input.ShowMajor != nil {
		profile.ShowMajor = *input.ShowMajor
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return refreshProfileComplete(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListPhotos returns the user's photos in display order.
func ListPhotos(userID uint) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := config.DB.Where("user_id = ?", userID).
		Order("position ASC").
		Find(&photos).Error
	return photos, err
}

// AddPhoto appends an uploaded photo URL to the user's set. The first photo
// becomes the primary one; the set is capped at MaxPhotosPerUser.
func AddPhoto(userID uint, url string) (*models.Photo, error) {
	var photo models.Photo
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Photo{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxPhotosPerUser {
			return ErrPhotoLimit
		}

		var maxPosition int
		row := tx.Model(&models.Photo{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPosition); err != nil {
			return err
		}

		photo = models.Photo{
			UserID:    userID,
			URL:       url,
			Position:  maxPosition + 1,
			IsPrimary: count == 0,
		}
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}

		return refreshProfileComplete(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto removes one of the caller's photos. When the primary photo
// goes, the lowest-position survivor takes over.
func DeletePhoto(userID, photoID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		err := tx.Where("id = ? AND user_id = ?", photoID, userID).First(&photo).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}

		if err := tx.Delete(&photo).Error; err != nil {
			return err
		}

		if photo.IsPrimary {
			var next models.Photo
			err := tx.Where("user_id = ?", userID).
				Order("position ASC").
				First(&next).Error
			if err == nil {
				if err := tx.Model(&next).Update("is_primary", true).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return nil
	})
}

// SetPrimaryPhoto moves the primary flag: clear-then-set inside one
// transaction keeps at most one primary per user.
func SetPrimaryPhoto(userID, photoID uint) (*models.Photo, error) {
	var photo models.Photo
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", photoID, userID).First(&photo).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}

		if err := tx.Model(&models.Photo{}).
			Where("user_id = ? AND is_primary = ?", userID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		photo.IsPrimary = true
		return tx.Model(&photo).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// refreshProfileComplete flips the user's profile-complete flag on once
// they have a bio and at least one photo. It never flips back off, matching
// the account lifecycle (registration already seeds it true).
func refreshProfileComplete(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}
	if user.ProfileComplete {
		return nil
	}

	var profile models.Profile
	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return err
	}
	var photos int64
	if err := tx.Model(&models.Photo{}).
		Where("user_id = ?", userID).
		Count(&photos).Error; err != nil {
		return err
	}

	if profile.Bio != "" && photos > 0 {
		return tx.Model(&user).Update("profile_complete", true).Error
	}
	return nil
}
