package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRegistrationTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := GenerateRegistrationToken()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 43, "256 bits of entropy, url-safe")
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestCampusCodeFromURL(t *testing.T) {
	code := CampusCodeFromURL("https://documentos.example.edu/xeg9S0Y2Z9XI")
	assert.Len(t, code, 12)
	assert.Equal(t, code, CampusCodeFromURL("https://documentos.example.edu/xeg9S0Y2Z9XI"),
		"same path, same code")
	assert.NotEqual(t, code, CampusCodeFromURL("https://documentos.example.edu/other"))

	assert.Empty(t, CampusCodeFromURL("https://documentos.example.edu/"))
	assert.Empty(t, CampusCodeFromURL("://not a url"))
}
