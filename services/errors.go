// Error values shared across the service layer. Controllers translate
// these into HTTP status codes; no service writes a response itself.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfSwipe is returned when a user swipes on themselves.
	ErrSelfSwipe = errors.New("cannot swipe on yourself")

	// ErrDuplicateSwipe is returned on a second swipe for the same
	// (actor, target) direction. Swipes are one-time decisions.
	ErrDuplicateSwipe = errors.New("already swiped on this user")

	// ErrInvalidDecision is returned for a swipe decision outside the
	// like/dislike/superlike set.
	ErrInvalidDecision = errors.New("invalid swipe decision")

	// ErrMatchNotFound covers both a missing match and a match the
	// caller is not part of, so existence never leaks to outsiders.
	ErrMatchNotFound = errors.New("match not found")

	// ErrUserNotFound is returned when a user id does not resolve to a
	// visible account.
	ErrUserNotFound = errors.New("user not found")

	// ErrPhotoNotFound is returned for photo ids outside the caller's set.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrTokenInvalid covers absent and already-used registration tokens.
	// The two are deliberately indistinguishable to the caller.
	ErrTokenInvalid = errors.New("registration token invalid or already used")

	// ErrTokenExpired is returned for a known, unused token past its
	// 30-minute window; the client should restart credential verification.
	ErrTokenExpired = errors.New("registration token expired")

	// ErrCredentialTaken is returned when the verified credential already
	// belongs to an account.
	ErrCredentialTaken = errors.New("credential already registered")

	// ErrEmptyContent is returned for messages that are blank after trimming.
	ErrEmptyContent = errors.New("message content is empty")

	// ErrContentTooLong is returned for messages over the length cap.
	ErrContentTooLong = errors.New("message content too long")

	// ErrPhotoLimit is returned when the photo cap is reached.
	ErrPhotoLimit = errors.New("photo limit reached")

	// ErrWeakPassword is returned when the password policy rejects the input.
	ErrWeakPassword = errors.New("password too weak")
)

// DuplicateFieldError names the unique user field a registration collided on.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

// Credential failure reasons
const (
	CredentialBadHost     = "bad_host"
	CredentialUnreachable = "unreachable"
	CredentialTimeout     = "timeout"
	CredentialUnparseable = "unparseable"
	CredentialWrongCampus = "wrong_campus"
	CredentialExpired     = "expired"
)

// CredentialError is a failed credential verification. Reason is one of the
// Credential* constants; External marks unreachable/timeout failures, which
// map to a retryable 502 instead of a 403.
type CredentialError struct {
	Reason   string
	External bool
	Message  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credential rejected (%s): %s", e.Reason, e.Message)
}
