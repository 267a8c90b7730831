package controllers

import (
	"net/http"
	"strconv"

	"campusmatch/services"

	"github.com/gin-gonic/gin"
)

func matchIDParam(c *gin.Context) (uint, bool) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return 0, false
	}
	return uint(matchID), true
}

// Messages lists a conversation page, oldest-first, marking the other
// participant's messages read as a side effect
// (GET /matches/:id/messages?before_id=&limit=).
func Messages(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var beforeID uint64
	if raw := c.Query("before_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before_id"})
			return
		}
		beforeID = parsed
	}

	limit := services.DefaultMessagePageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := services.ListMessages(matchID, currentUserID(c), uint(beforeID), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}

type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage appends a message to the conversation
// (POST /matches/:id/messages).
func SendMessage(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := services.SendMessage(matchID, currentUserID(c), input.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// MarkRead bulk-marks the other participant's messages read
// (POST /matches/:id/messages/mark-read).
func MarkRead(c *gin.Context) {
	matchID, ok := matchIDParam(c)
	if !ok {
		return
	}

	count, err := services.MarkAllRead(matchID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_read": count})
}

// Conversations lists the caller's matches that already have messages
// (GET /conversations).
func Conversations(c *gin.Context) {
	conversations, err := services.ListConversations(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations, "total": len(conversations)})
}
