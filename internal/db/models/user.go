package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents an identity record in the directory.
// Users authenticate with their e-mail address and an Argon2id hashed
// password and hold an unordered set of roles used for authorization.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"uid"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100" json:"firstName"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100" json:"lastName"`
	// Email is the unique e-mail address used as login subject.
	Email string `gorm:"unique;size:255;not null" json:"email"`
	// Password is the Argon2id hashed password. Never serialized.
	Password string `gorm:"size:255" json:"-"`
	// Age of the user.
	Age int `json:"age"`
	// Phone is the unique contact phone number.
	Phone string `gorm:"size:50" json:"phone"`
	// Gender of the user.
	Gender string `gorm:"size:30" json:"gender"`
	// Country of residence.
	Country string `gorm:"size:100" json:"country"`
	// Deleted marks the record as soft deleted. Soft-deleted users are
	// excluded from every lookup feeding authentication decisions.
	Deleted bool `gorm:"not null;default:false" json:"deleted"`
	// DeletedAt is the soft delete timestamp (nil if not deleted).
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	// Roles is the unordered set of roles held by the user.
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user currently holds the role with the given id.
func (u *User) HasRole(roleID uint64) bool {
	for i := range u.Roles {
		if u.Roles[i].ID == roleID {
			return true
		}
	}

	return false
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating users or updating passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
