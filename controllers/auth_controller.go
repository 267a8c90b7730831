package controllers

import (
	"log"
	"net/http"
	"time"

	"campusmatch/services"
	"campusmatch/utils"

	"github.com/gin-gonic/gin"
)

type VerifyCredentialInput struct {
	CredentialURL string `json:"credential_url" binding:"required,url"`
}

// VerifyCredential runs the external credential check and hands back a
// single-use registration token (POST /credential/verify).
func VerifyCredential(c *gin.Context) {
	var input VerifyCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issued, err := services.IssueRegistrationToken(input.CredentialURL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"full_name":  issued.FullName,
		"validity":   issued.Validity,
		"token":      issued.Token,
		"expires_in": issued.ExpiresIn,
	})
}

type RegisterInput struct {
	Token           string `json:"token" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	BirthDate       string `json:"birth_date"`
	Gender          string `json:"gender" binding:"required,oneof=male female other"`
	Seeking         string `json:"seeking" binding:"omitempty,oneof=men women everyone"`
	Major           string `json:"major"`
	Semester        *int   `json:"semester" binding:"omitempty,min=1,max=12"`
	Bio             string `json:"bio" binding:"max=500"`
}

// Register consumes a registration token and provisions the account
// (POST /account/register).
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	var birthDate *time.Time
	if input.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must be YYYY-MM-DD"})
			return
		}
		birthDate = &parsed
	}

	seeking := input.Seeking
	if seeking == "" {
		seeking = "everyone"
	}

	user, err := services.RegisterAccount(services.RegisterInput{
		Token:     input.Token,
		Email:     input.Email,
		Username:  input.Username,
		Password:  input.Password,
		BirthDate: birthDate,
		Gender:    input.Gender,
		Seeking:   seeking,
		Major:     input.Major,
		Semester:  input.Semester,
		Bio:       input.Bio,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	tokens, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate session tokens"})
		return
	}

	if err := utils.SendWelcomeEmail(user.Email, user.FullName); err != nil {
		log.Printf("welcome email to %s failed: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    user,
		"tokens":  tokens,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates email + password (POST /auth/login).
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := services.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh exchanges a refresh token for a fresh pair (POST /auth/refresh).
func Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.ParseToken(input.Refresh, "refresh")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	tokens, err := utils.GenerateTokenPair(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate session tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
