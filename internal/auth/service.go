package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/controller/user"
)

// Service verifies login credentials and issues bearer tokens.
type Service struct {
	db    *gorm.DB
	codec *Codec
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, codec *Codec) *Service {
	return &Service{db: db, codec: codec}
}

// Codec exposes the token codec used by this service.
func (s *Service) Codec() *Codec {
	return s.codec
}

// Login verifies the credential pair against the active user matching the
// e-mail and returns a signed token on success. Unknown users and wrong
// passwords both fail with the same ErrInvalidCredentials; soft-deleted
// users cannot authenticate.
func (s *Service) Login(email, password string) (string, error) {
	u, err := user.FindActiveByEmail(s.db, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !u.VerifyPassword(password) {
		return "", ErrInvalidCredentials
	}

	return s.codec.Issue(u.Email)
}
