package controllers

import (
	"net/http"
	"strconv"

	"campusmatch/models"
	"campusmatch/services"
	"campusmatch/utils"

	"github.com/gin-gonic/gin"
)

// MyProfile returns the caller's profile (GET /profile).
func MyProfile(c *gin.Context) {
	profile, err := services.GetProfile(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type UpdateProfileInput struct {
	Bio           *string   `json:"bio" binding:"omitempty,max=500"`
	Interests     *[]string `json:"interests"`
	MaxDistanceKm *int      `json:"max_distance_km" binding:"omitempty,min=1,max=100"`
	MinAge        *int      `json:"min_age" binding:"omitempty,min=18,max=99"`
	MaxAge        *int      `json:"max_age" binding:"omitempty,min=18,max=99"`
	ShowAge       *bool     `json:"show_age"`
	ShowMajor     *bool     `json:"show_major"`
}

// UpdateMyProfile updates bio, interests and preference bounds (PUT /profile).
func UpdateMyProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.UpdateProfile(currentUserID(c), services.UpdateProfileInput{
		Bio:           input.Bio,
		Interests:     input.Interests,
		MaxDistanceKm: input.MaxDistanceKm,
		MinAge:        input.MinAge,
		MaxAge:        input.MaxAge,
		ShowAge:       input.ShowAge,
		ShowMajor:     input.ShowMajor,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Interests lists the predefined interests (GET /profile/interests).
func Interests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"interests": models.AvailableInterests})
}

// MyPhotos lists the caller's photos in display order (GET /profile/photos).
func MyPhotos(c *gin.Context) {
	photos, err := services.ListPhotos(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

type UploadPhotoInput struct {
	Image string `json:"image" binding:"required"` // "data:<mime>;base64,<data>"
}

// UploadPhoto stores a base64 photo in the blob store and appends it to the
// caller's set (POST /profile/photos).
func UploadPhoto(c *gin.Context) {
	var input UploadPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	url, err := utils.UploadBase64ImageToS3(input.Image, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photo, err := services.AddPhoto(userID, url)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func photoIDParam(c *gin.Context) (uint, bool) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return 0, false
	}
	return uint(photoID), true
}

// DeletePhoto removes one of the caller's photos (DELETE /profile/photos/:id).
func DeletePhoto(c *gin.Context) {
	photoID, ok := photoIDParam(c)
	if !ok {
		return
	}

	if err := services.DeletePhoto(currentUserID(c), photoID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}

// SetPrimaryPhoto flags one photo as the profile's display photo
// (POST /profile/photos/:id/primary).
func SetPrimaryPhoto(c *gin.Context) {
	photoID, ok := photoIDParam(c)
	if !ok {
		return
	}

	photo, err := services.SetPrimaryPhoto(currentUserID(c), photoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}
