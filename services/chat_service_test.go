package services

import (
	"strings"
	"testing"

	"campusmatch/config"
	"campusmatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatFixture(t *testing.T) (alice, bob models.User, match *models.Match) {
	t.Helper()
	setupTestDB(t)
	alice = newTestUser(t, "alice")
	bob = newTestUser(t, "bob", func(o *testUserOpts) { o.gender = models.GenderMale })
	match = formMatch(t, alice.ID, bob.ID)
	return alice, bob, match
}

func TestSendMessageUpdatesMatchTimestamp(t *testing.T) {
	alice, _, match := chatFixture(t)

	message, err := SendMessage(match.ID, alice.ID, "  hola  ")
	require.NoError(t, err)
	assert.Equal(t, "hola", message.Content, "content is stored trimmed")
	assert.False(t, message.Read)

	var stored models.Match
	require.NoError(t, config.DB.First(&stored, match.ID).Error)
	require.NotNil(t, stored.LastMessageAt)
	assert.Equal(t, message.CreatedAt.Unix(), stored.LastMessageAt.Unix())
}

func TestSendMessageValidation(t *testing.T) {
	alice, _, match := chatFixture(t)

	_, err := SendMessage(match.ID, alice.ID, "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = SendMessage(match.ID, alice.ID, strings.Repeat("x", models.MaxMessageLength+1))
	assert.ErrorIs(t, err, ErrContentTooLong)

	// Exactly at the cap is fine.
	_, err = SendMessage(match.ID, alice.ID, strings.Repeat("x", models.MaxMessageLength))
	assert.NoError(t, err)
}

func TestSendMessageAuthorization(t *testing.T) {
	alice, bob, match := chatFixture(t)
	eve := newTestUser(t, "eve")

	_, err := SendMessage(match.ID, eve.ID, "hi")
	assert.ErrorIs(t, err, ErrMatchNotFound, "outsiders see the match as absent")

	require.NoError(t, DeactivateMatch(match.ID, alice.ID))
	_, err = SendMessage(match.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrMatchNotFound, "no messages into an inactive match")
}

func TestListMessagesPaginationAndOrder(t *testing.T) {
	alice, bob, match := chatFixture(t)

	sent := make([]*models.Message, 0, 5)
	for _, text := range []string{"one", "two", "three", "four", "five"} {
		m, err := SendMessage(match.ID, bob.ID, text)
		require.NoError(t, err)
		sent = append(sent, m)
	}

	page, err := ListMessages(match.ID, alice.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "four", page[0].Content, "the two most recent, oldest first")
	assert.Equal(t, "five", page[1].Content)

	older, err := ListMessages(match.ID, alice.ID, page[0].ID, 2)
	require.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, "two", older[0].Content)
	assert.Equal(t, "three", older[1].Content)

	all, err := ListMessages(match.ID, alice.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(sent), "zero limit falls back to the default page size")
}

func TestListMessagesMarksOtherSideRead(t *testing.T) {
	alice, bob, match := chatFixture(t)

	_, err := SendMessage(match.ID, bob.ID, "from bob")
	require.NoError(t, err)
	mine, err := SendMessage(match.ID, alice.ID, "from alice")
	require.NoError(t, err)

	_, err = ListMessages(match.ID, alice.ID, 0, 50)
	require.NoError(t, err)

	var unreadFromBob int64
	config.DB.Model(&models.Message{}).
		Where("match_id = ? AND sender_id = ? AND read = ?", match.ID, bob.ID, false).
		Count(&unreadFromBob)
	assert.Zero(t, unreadFromBob, "listing marks the other side's messages read")

	var stored models.Message
	require.NoError(t, config.DB.Where("sender_id = ?", bob.ID).First(&stored).Error)
	assert.True(t, stored.Read)
	assert.NotNil(t, stored.ReadAt)

	stored = models.Message{}
	require.NoError(t, config.DB.First(&stored, mine.ID).Error)
	assert.False(t, stored.Read, "own messages stay unread until the other side lists")
}

func TestListMessagesAuthorization(t *testing.T) {
	_, _, match := chatFixture(t)
	eve := newTestUser(t, "eve")

	_, err := ListMessages(match.ID, eve.ID, 0, 50)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, err = ListMessages(match.ID+99, eve.ID, 0, 50)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMarkAllReadIdempotent(t *testing.T) {
	alice, bob, match := chatFixture(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := SendMessage(match.ID, bob.ID, text)
		require.NoError(t, err)
	}

	count, err := MarkAllRead(match.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	count, err = MarkAllRead(match.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "second call is a no-op")
}
