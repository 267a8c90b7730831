package controllers

import (
	"net/http"
	"strconv"

	"campusmatch/config"
	"campusmatch/services"

	"github.com/gin-gonic/gin"
)

// Candidates lists users the caller can swipe on (GET /matches/candidates).
func Candidates(c *gin.Context) {
	user, err := services.FindUserByID(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	candidates, err := services.ListCandidates(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	views, err := services.ProjectUsers(config.DB, candidates)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": views,
		"total":      len(views),
	})
}

type SwipeInput struct {
	TargetID uint   `json:"target_id" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=like dislike superlike"`
}

// Swipe records a decision and reports whether it formed a match
// (POST /matches/swipe).
func Swipe(c *gin.Context) {
	var input SwipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.RecordSwipe(currentUserID(c), input.TargetID, input.Decision)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// MyMatches lists the caller's active matches (GET /matches).
func MyMatches(c *gin.Context) {
	matches, err := services.ListMatches(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "total": len(matches)})
}

// MatchDetail shows one match from the caller's side (GET /matches/:id).
func MatchDetail(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	view, err := services.GetMatch(uint(matchID), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteMatch soft-deactivates a match (DELETE /matches/:id).
func DeleteMatch(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return
	}

	if err := services.DeactivateMatch(uint(matchID), currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match removed"})
}
