package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusmatch/config"
	"campusmatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credentialPage(name, campus, status, validity string) string {
	return fmt.Sprintf(`<html><body><table>
		<tr><td>Nombre:</td><td>%s</td></tr>
		<tr><td>Sede:</td><td>%s</td></tr>
		<tr><td>Situación:</td><td>%s</td></tr>
		<tr><td>Vigencia:</td><td>%s</td></tr>
	</table></body></html>`, name, campus, status, validity)
}

func newCredentialServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	t.Setenv("CREDENTIAL_HOST", "127.0.0.1")
	return server
}

func TestVerifyCredentialValid(t *testing.T) {
	server := newCredentialServer(t, credentialPage(
		"ANA TORRES", "(CUCEI) CENTRO UNIVERSITARIO DE CIENCIAS EXACTAS E INGENIERIAS", "VIGENTE", "ENE-2026"))

	info, err := VerifyCredential(server.URL + "/qr-abc123")
	require.NoError(t, err)
	assert.Equal(t, "ANA TORRES", info.FullName)
	assert.Equal(t, "VIGENTE", info.Status)
	assert.Equal(t, "ENE-2026", info.Validity)
}

func TestVerifyCredentialWrongHost(t *testing.T) {
	t.Setenv("CREDENTIAL_HOST", "documentos.example.edu")

	_, err := VerifyCredential("https://phishing.example.com/qr-abc123")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	assert.Equal(t, CredentialBadHost, cred.Reason)
	assert.False(t, cred.External, "host check happens before any network call")
}

func TestVerifyCredentialWrongCampus(t *testing.T) {
	server := newCredentialServer(t, credentialPage(
		"ANA TORRES", "(CUCSH) OTRO CENTRO", "VIGENTE", "ENE-2026"))

	_, err := VerifyCredential(server.URL + "/qr-abc123")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	assert.Equal(t, CredentialWrongCampus, cred.Reason)
}

func TestVerifyCredentialExpired(t *testing.T) {
	server := newCredentialServer(t, credentialPage(
		"ANA TORRES", "(CUCEI) CENTRO UNIVERSITARIO", "NO VIGENTE", "ENE-2020"))

	_, err := VerifyCredential(server.URL + "/qr-abc123")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	assert.Equal(t, CredentialExpired, cred.Reason)
}

func TestVerifyCredentialUnparseable(t *testing.T) {
	server := newCredentialServer(t, "<html><body><p>mantenimiento</p></body></html>")

	_, err := VerifyCredential(server.URL + "/qr-abc123")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	assert.Equal(t, CredentialUnparseable, cred.Reason)
}

func TestVerifyCredentialTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	t.Setenv("CREDENTIAL_HOST", "127.0.0.1")

	prev := verifierClient
	verifierClient = &http.Client{Timeout: 20 * time.Millisecond}
	t.Cleanup(func() { verifierClient = prev })

	_, err := VerifyCredential(server.URL + "/qr-abc123")
	var cred *CredentialError
	require.ErrorAs(t, err, &cred)
	assert.Equal(t, CredentialTimeout, cred.Reason)
	assert.True(t, cred.External)
}

func TestIssueRegistrationToken(t *testing.T) {
	setupTestDB(t)
	server := newCredentialServer(t, credentialPage(
		"ANA TORRES", "(CUCEI) CENTRO UNIVERSITARIO", "VIGENTE", "ENE-2026"))

	issued, err := IssueRegistrationToken(server.URL + "/qr-abc123")
	require.NoError(t, err)
	assert.Equal(t, "ANA TORRES", issued.FullName)
	assert.Equal(t, "ENE-2026", issued.Validity)
	assert.EqualValues(t, models.TemporaryTokenTTL.Seconds(), issued.ExpiresIn)
	assert.NotEmpty(t, issued.Token)

	var stored models.TemporaryToken
	require.NoError(t, config.DB.Where("token = ?", issued.Token).First(&stored).Error)
	assert.False(t, stored.Used)
	assert.Len(t, stored.CampusCode, 12)
}

func TestIssueRegistrationTokenAlreadyRegistered(t *testing.T) {
	setupTestDB(t)
	server := newCredentialServer(t, credentialPage(
		"ANA TORRES", "(CUCEI) CENTRO UNIVERSITARIO", "VIGENTE", "ENE-2026"))
	credentialURL := server.URL + "/qr-abc123"

	issued, err := IssueRegistrationToken(credentialURL)
	require.NoError(t, err)

	// Bind the credential to an account, then try to verify again.
	input := validRegisterInput(issued.Token)
	_, err = RegisterAccount(input)
	require.NoError(t, err)

	_, err = IssueRegistrationToken(credentialURL)
	assert.ErrorIs(t, err, ErrCredentialTaken)
}
