package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/controller/user"
)

// Principal is the resolved identity attached to an authenticated request:
// the user plus the authority set derived from its active roles. It lives in
// the request scope only and is discarded when the request completes.
type Principal struct {
	UserID      uint64
	Email       string
	Authorities []string
}

// HasAuthority reports whether the principal holds the named authority.
func (p *Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}

	return false
}

// LoadPrincipal resolves a verified token subject to a principal. The
// directory is the single source of truth here: a subject not resolving to
// an active user fails with ErrPrincipalNotFound even if the presented token
// was cryptographically valid, and soft-deleted roles grant no authority.
func LoadPrincipal(db *gorm.DB, subject string) (*Principal, error) {
	u, err := user.FindActiveByEmail(db, subject)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}

	authorities := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		authorities = append(authorities, r.Name)
	}

	return &Principal{
		UserID:      u.ID,
		Email:       u.Email,
		Authorities: authorities,
	}, nil
}
