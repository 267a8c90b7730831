package controllers

import (
	"net/http"
	"strconv"
	"time"

	"campusmatch/config"
	"campusmatch/services"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's own account (GET /users/me).
func Me(c *gin.Context) {
	user, err := services.FindUserByID(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserInput struct {
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Seeking   *string `json:"seeking" binding:"omitempty,oneof=men women everyone"`
	Major     *string `json:"major"`
	Semester  *int    `json:"semester" binding:"omitempty,min=1,max=12"`
}

// UpdateMe updates the caller's demographic fields (PUT /users/me).
func UpdateMe(c *gin.Context) {
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := services.UpdateUserInput{
		Gender:   input.Gender,
		Seeking:  input.Seeking,
		Major:    input.Major,
		Semester: input.Semester,
	}
	if input.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *input.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
			return
		}
		update.BirthDate = &parsed
	}

	user, err := services.UpdateUser(currentUserID(c), update)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UserDetail shows another user's public profile (GET /users/:id).
func UserDetail(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := services.FindVisibleUser(uint(userID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	view, err := services.ProjectUser(config.DB, user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
