package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = time.Hour * 24
	refreshTokenTTL = time.Hour * 24 * 7
)

// TokenPair is the session credential issued after registration and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func signToken(userID uint, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"type":   kind,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GenerateTokenPair issues an access + refresh token pair for the user.
func GenerateTokenPair(userID uint) (*TokenPair, error) {
	access, err := signToken(userID, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(userID, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseToken validates tokenString and returns the user id carried in it.
// kind must match the token's "type" claim ("access" or "refresh").
func ParseToken(tokenString, kind string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if t, _ := claims["type"].(string); t != kind {
		return 0, errors.New("wrong token type")
	}
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("userId claim missing")
	}
	return uint(id), nil
}
