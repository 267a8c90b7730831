package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"campusmatch/config"
	"campusmatch/models"
	"campusmatch/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points config.DB at a fresh in-memory database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		sqlDB.Close()
	})
}

type testUserOpts struct {
	gender          string
	seeking         string
	verified        bool
	active          bool
	profileComplete bool
	photos          int
	lastActive      time.Time
}

func defaultUserOpts() testUserOpts {
	return testUserOpts{
		gender:          models.GenderFemale,
		seeking:         models.SeekingEveryone,
		verified:        true,
		active:          true,
		profileComplete: true,
		photos:          1,
		lastActive:      time.Now(),
	}
}

// newTestUser inserts a swipe-ready user plus its profile and photos.
func newTestUser(t *testing.T, username string, mutate ...func(*testUserOpts)) models.User {
	t.Helper()

	opts := defaultUserOpts()
	for _, m := range mutate {
		m(&opts)
	}

	credentialURL := "https://documentos.example.edu/" + username
	user := models.User{
		Username:        username,
		Email:           username + "@example.edu",
		PasswordHash:    "x",
		FullName:        username,
		CampusCode:      utils.CampusCodeFromURL(credentialURL),
		CredentialURL:   credentialURL,
		Validity:        "ENE-2026",
		Gender:          opts.gender,
		Seeking:         opts.seeking,
		Verified:        opts.verified,
		Active:          opts.active,
		ProfileComplete: opts.profileComplete,
		LastActiveAt:    opts.lastActive,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	require.NoError(t, config.DB.Create(&models.Profile{UserID: user.ID, Bio: "hi"}).Error)

	for i := 0; i < opts.photos; i++ {
		photo := models.Photo{
			UserID:    user.ID,
			URL:       fmt.Sprintf("https://cdn.example.edu/%s-%d.jpg", username, i),
			Position:  i,
			IsPrimary: i == 0,
		}
		require.NoError(t, config.DB.Create(&photo).Error)
	}

	return user
}
