// Package token signs and verifies the session cookie value. The cookie
// carries an HS256-signed token whose subject is the opaque server-side
// session ID; the signature only guards against tampering — all authority
// lives in the session record, which the server can destroy at any time.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Codec signs session IDs into cookie values and parses them back.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign wraps a session ID in a signed token expiring with the session.
func (c *Codec) Sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse verifies the signature and returns the embedded session ID. Any
// malformed, tampered or expired value fails with ErrInvalidToken.
func (c *Codec) Parse(value string) (string, error) {
	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
