package services

import (
	"fmt"
	"testing"

	"campusmatch/config"
	"campusmatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPhotoFirstBecomesPrimary(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) { o.photos = 0 })

	first, err := AddPhoto(user.ID, "https://cdn.example.edu/a.jpg")
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, 0, first.Position)

	second, err := AddPhoto(user.ID, "https://cdn.example.edu/b.jpg")
	require.NoError(t, err)
	assert.False(t, second.IsPrimary)
	assert.Equal(t, 1, second.Position)
}

func TestAddPhotoLimit(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) { o.photos = 0 })

	for i := 0; i < models.MaxPhotosPerUser; i++ {
		_, err := AddPhoto(user.ID, fmt.Sprintf("https://cdn.example.edu/%d.jpg", i))
		require.NoError(t, err)
	}

	_, err := AddPhoto(user.ID, "https://cdn.example.edu/extra.jpg")
	assert.ErrorIs(t, err, ErrPhotoLimit)
}

func TestSetPrimaryPhotoMovesFlag(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) { o.photos = 3 })

	photos, err := ListPhotos(user.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)
	require.True(t, photos[0].IsPrimary)

	_, err = SetPrimaryPhoto(user.ID, photos[2].ID)
	require.NoError(t, err)

	var primaries int64
	config.DB.Model(&models.Photo{}).
		Where("user_id = ? AND is_primary = ?", user.ID, true).
		Count(&primaries)
	assert.EqualValues(t, 1, primaries, "exactly one primary across the set")

	var updated models.Photo
	require.NoError(t, config.DB.First(&updated, photos[2].ID).Error)
	assert.True(t, updated.IsPrimary)
}

func TestSetPrimaryPhotoNotMine(t *testing.T) {
	setupTestDB(t)
	ana := newTestUser(t, "ana")
	eve := newTestUser(t, "eve")

	photos, err := ListPhotos(ana.ID)
	require.NoError(t, err)
	require.NotEmpty(t, photos)

	_, err = SetPrimaryPhoto(eve.ID, photos[0].ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestDeletePrimaryPhotoPromotesNext(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) { o.photos = 3 })

	photos, err := ListPhotos(user.ID)
	require.NoError(t, err)

	require.NoError(t, DeletePhoto(user.ID, photos[0].ID))

	remaining, err := ListPhotos(user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.True(t, remaining[0].IsPrimary, "lowest-position survivor takes over")
	assert.False(t, remaining[1].IsPrimary)
}

func TestDeleteLastPhoto(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) { o.photos = 1 })

	photos, err := ListPhotos(user.ID)
	require.NoError(t, err)
	require.NoError(t, DeletePhoto(user.ID, photos[0].ID))

	remaining, err := ListPhotos(user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestUpdateProfileCompletesProfile(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana", func(o *testUserOpts) {
		o.photos = 0
		o.profileComplete = false
	})
	require.NoError(t, config.DB.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("bio", "").Error)

	bio := "ingeniera in progress"
	_, err := UpdateProfile(user.ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, config.DB.First(&stored, user.ID).Error)
	assert.False(t, stored.ProfileComplete, "bio alone is not enough")

	_, err = AddPhoto(user.ID, "https://cdn.example.edu/a.jpg")
	require.NoError(t, err)

	require.NoError(t, config.DB.First(&stored, user.ID).Error)
	assert.True(t, stored.ProfileComplete, "bio plus a photo completes the profile")
}

func TestUpdateProfilePartial(t *testing.T) {
	setupTestDB(t)
	user := newTestUser(t, "ana")

	interests := []string{"Music", "Chess"}
	maxAge := 28
	profile, err := UpdateProfile(user.ID, UpdateProfileInput{
		Interests: &interests,
		MaxAge:    &maxAge,
	})
	require.NoError(t, err)

	assert.Equal(t, "hi", profile.Bio, "unset fields keep their value")
	assert.Equal(t, interests, profile.Interests)
	assert.Equal(t, 28, profile.MaxAge)
	assert.Equal(t, 50, profile.MaxDistanceKm)
}
