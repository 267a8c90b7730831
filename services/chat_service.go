package services

import (
	"strings"
	"time"

	"campusmatch/config"
	"campusmatch/models"

	"gorm.io/gorm"
)

// DefaultMessagePageSize is the message page size when none is requested.
const DefaultMessagePageSize = 50

// ListMessages returns up to limit messages of the match, oldest-first for
// display; with beforeID set only messages older than that id are returned.
// Listing marks the other participant's unread messages as read, which is
// the deliberate marks-as-read-on-view coupling; re-listing is a no-op for
// rows already read.
func ListMessages(matchID, requesterID, beforeID uint, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultMessagePageSize
	}

	var messages []models.Message
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		match, err := participantMatch(tx, matchID, requesterID)
		if err != nil {
			return err
		}

		query := tx.Where("match_id = ?", match.ID)
		if beforeID > 0 {
			query = query.Where("id < ?", beforeID)
		}
		if err := query.Order("created_at DESC, id DESC").
			Limit(limit).
			Find(&messages).Error; err != nil {
			return err
		}

		_, err = markRead(tx, match, requesterID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Newest-first from the query, oldest-first for the client.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage appends a message to the match and bumps the match's
// last-message timestamp in the same transaction.
func SendMessage(matchID, senderID uint, content string) (*models.Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}
	if len([]rune(trimmed)) > models.MaxMessageLength {
		return nil, ErrContentTooLong
	}

	var message models.Message
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		match, err := participantMatch(tx, matchID, senderID)
		if err != nil {
			return err
		}

		message = models.Message{
			MatchID:  match.ID,
			SenderID: senderID,
			Content:  trimmed,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		return tx.Model(&models.Match{}).
			Where("id = ?", match.ID).
			Update("last_message_at", message.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkAllRead marks every unread message from the other participant as read
// and returns how many rows changed. Idempotent: a second call returns 0.
func MarkAllRead(matchID, requesterID uint) (int64, error) {
	var count int64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		match, err := participantMatch(tx, matchID, requesterID)
		if err != nil {
			return err
		}
		count, err = markRead(tx, match, requesterID)
		return err
	})
	return count, err
}

func markRead(tx *gorm.DB, match *models.Match, requesterID uint) (int64, error) {
	res := tx.Model(&models.Message{}).
		Where("match_id = ? AND sender_id = ? AND read = ?",
			match.ID, match.OtherUserID(requesterID), false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
