// Package utils provides helpers for minting editor access tokens.
package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleEditor is the role claim required on write routes.
const RoleEditor = "EDITOR"

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT.  The claims are the
// subject (sub), the role, the expiration (exp) and the issue time (iat).
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
	if strings.TrimSpace(secret) == "" {
		return AccessToken{}, errors.New("empty signing secret")
	}
	if ttlMin <= 0 {
		return AccessToken{}, errors.New("token ttl must be positive")
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
