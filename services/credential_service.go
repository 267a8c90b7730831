package services

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Labels on the institutional credential page. The page renders a
// label/value table; values sit in the cell following each label.
const (
	labelName     = "Nombre:"
	labelCampus   = "Sede:"
	labelStatus   = "Situación:"
	labelValidity = "Vigencia:"

	statusCurrent = "VIGENTE"
)

const verifierTimeout = 15 * time.Second

// verifierClient is swapped out in tests. The credential host still serves
// an expired certificate chain, hence InsecureSkipVerify.
var verifierClient = &http.Client{
	Timeout: verifierTimeout,
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	},
}

// CredentialInfo is the result of a successful credential verification.
type CredentialInfo struct {
	FullName string
	Campus   string
	Status   string
	Validity string
}

func credentialHost() string {
	if h := os.Getenv("CREDENTIAL_HOST"); h != "" {
		return h
	}
	return "documentos.udg.mx"
}

func campusKeyword() string {
	if k := os.Getenv("CAMPUS_KEYWORD"); k != "" {
		return k
	}
	return "CUCEI"
}

// VerifyCredential fetches the credential page behind the QR URL and checks
// that it belongs to the expected campus and is still current. The host is
// validated before any network call.
func VerifyCredential(rawURL string) (*CredentialInfo, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(parsed.Host, credentialHost()) {
		return nil, &CredentialError{
			Reason:  CredentialBadHost,
			Message: "URL is not from the institutional document host",
		}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &CredentialError{Reason: CredentialBadHost, Message: "invalid URL"}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := verifierClient.Do(req)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, &CredentialError{
				Reason:   CredentialTimeout,
				External: true,
				Message:  "credential service timed out",
			}
		}
		return nil, &CredentialError{
			Reason:   CredentialUnreachable,
			External: true,
			Message:  "could not reach the credential service",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &CredentialError{
			Reason:   CredentialUnreachable,
			External: true,
			Message:  fmt.Sprintf("credential service returned status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &CredentialError{Reason: CredentialUnparseable, Message: "could not parse credential page"}
	}

	info := &CredentialInfo{
		FullName: extractField(doc, labelName),
		Campus:   extractField(doc, labelCampus),
		Status:   extractField(doc, labelStatus),
		Validity: extractField(doc, labelValidity),
	}

	if info.FullName == "" || info.Campus == "" || info.Status == "" {
		return nil, &CredentialError{
			Reason:  CredentialUnparseable,
			Message: "credential data missing from the page",
		}
	}

	if !strings.Contains(strings.ToUpper(info.Campus), campusKeyword()) {
		return nil, &CredentialError{
			Reason:  CredentialWrongCampus,
			Message: "credential does not belong to this campus",
		}
	}

	if strings.ToUpper(info.Status) != statusCurrent {
		return nil, &CredentialError{
			Reason:  CredentialExpired,
			Message: "credential is no longer current",
		}
	}

	return info, nil
}

// extractField reads the cell following the one holding label.
func extractField(doc *goquery.Document, label string) string {
	var value string
	doc.Find("td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == label {
			next := s.Next()
			if next.Length() > 0 {
				value = strings.TrimSpace(next.Text())
				return false
			}
		}
		return true
	})
	return value
}
