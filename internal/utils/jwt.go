package utils // package utils provides helpers for token issuing and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the decoded content of an auth token: who the caller is
// and whether they hold the admin capability. Middleware attaches it to
// the request context for handlers to read.
type Identity struct {
	UserID  uint64
	IsAdmin bool
}

// ErrInvalidToken is returned by ParseAuthToken for anything that is not
// a well-formed, correctly signed, unexpired token.
var ErrInvalidToken = errors.New("invalid auth token")

// NewAuthToken builds and signs an HS256 JWT for a user. The claims are
// subject (sub, the user ID), isAdmin, expiration (exp) and issued-at
// (iat). ttlMin controls how many minutes the token stays valid.
func NewAuthToken(secret string, userID uint64, isAdmin bool, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     userID,
		"isAdmin": isAdmin,
		"exp":     now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
		"iat":     now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies the signature and expiry of raw and extracts
// the identity claims. Any failure collapses into ErrInvalidToken; the
// caller does not need to distinguish a bad signature from garbage.
func ParseAuthToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC tokens are ever issued; reject other algorithms.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	var id Identity
	// JWT numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	id.UserID = uint64(sub)
	if admin, ok := claims["isAdmin"].(bool); ok {
		id.IsAdmin = admin
	}
	return id, nil
}
