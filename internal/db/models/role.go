package models

import "time"

// Role represents a named capability in the role-based access control system.
// Role names double as the authority strings checked on protected routes,
// for example "ADMIN" and "USER".
type Role struct {
	// ID is the unique identifier for the role.
	ID uint64 `gorm:"primaryKey" json:"uid"`
	// Name is the unique name of the role (e.g., "ADMIN", "USER").
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255" json:"description"`
	// Icon is an optional UI hint for clients rendering the role.
	Icon string `gorm:"size:100" json:"icon"`
	// IsAdmin grants elevated authority on management endpoints.
	IsAdmin bool `gorm:"not null;default:false" json:"isAdmin"`
	// IsDefaultRole marks the role assigned automatically at sign-up.
	IsDefaultRole bool `gorm:"not null;default:false" json:"isDefaultRole"`
	// Deleted marks the record as soft deleted. A soft-deleted role is not
	// a valid assignment target and grants no authority.
	Deleted bool `gorm:"not null;default:false" json:"deleted"`
	// DeletedAt is the soft delete timestamp (nil if not deleted).
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}

// UserRole is the user↔role join row. The composite primary key gives the
// relation set semantics: inserting a pair a user already holds violates the
// key, which is how duplicate assignments surface from the database.
type UserRole struct {
	UserID uint64 `gorm:"primaryKey"`
	RoleID uint64 `gorm:"primaryKey"`
}

// TableName matches the many2many table of User.Roles.
func (UserRole) TableName() string {
	return "user_roles"
}
