package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec creates and parses signed bearer tokens. It is a pure function of
// the secret key and carries no state; tokens remain valid for their whole
// TTL and there is no revocation mechanism.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec signing with the given symmetric secret.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue encodes the subject into a signed token expiring after the
// configured TTL.
func (c *Codec) Issue(subject string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Verify parses an untrusted token string and returns its subject. Every
// failure mode, malformed input, wrong signature, wrong algorithm or expiry,
// collapses into ErrInvalidToken; a token is either fully valid or rejected.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := new(jwt.RegisteredClaims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
