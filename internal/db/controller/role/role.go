// Package role provides persistence operations for managing roles.
package role

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/dberr"
	"github.com/usergate/usergate/internal/db/models"
)

const (
	activeByID   = "id = ? AND deleted = ?"
	activeByName = "name = ? AND deleted = ?"
)

var (
	// ErrRoleNotFound is returned when no active role matches the query.
	ErrRoleNotFound = errors.New("the role does not exist")
	// ErrRoleNameEmpty is returned when attempting to create a role without a name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleAlreadyExists is returned when the role name is already taken.
	ErrRoleAlreadyExists = errors.New("role with this name already exists")
	// ErrNoDefaultRole is returned when no active default role is configured.
	ErrNoDefaultRole = errors.New("no default role configured")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetActive retrieves an active (not soft-deleted) role by its id.
func GetActive(db *gorm.DB, id uint64) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.Where(activeByID, id, false).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// FindActiveByName retrieves an active role by its unique name.
func FindActiveByName(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.Where(activeByName, name, false).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// FindDefault retrieves the active role flagged as default, assigned to every
// new user at sign-up.
func FindDefault(db *gorm.DB) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.Where("is_default_role = ? AND deleted = ?", true, false).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoDefaultRole
		}
		return nil, result.Error
	}

	return &role, nil
}

// Create stores a new role. The unique name constraint is enforced by the
// database and surfaced as ErrRoleAlreadyExists.
func Create(db *gorm.DB, role *models.Role) error {
	if db == nil {
		return ErrDBNil
	}
	if role.Name == "" {
		return ErrRoleNameEmpty
	}

	result := db.Create(role)
	if result.Error != nil {
		if dberr.IsDuplicateKey(result.Error) {
			return ErrRoleAlreadyExists
		}
		return result.Error
	}

	return nil
}

// Update describes a partial role update. Nil fields are left untouched.
type Update struct {
	Name          *string
	Description   *string
	Icon          *string
	IsAdmin       *bool
	IsDefaultRole *bool
}

// Patch applies a partial update to an active role and returns the updated record.
func Patch(db *gorm.DB, id uint64, update Update) (*models.Role, error) {
	role, err := GetActive(db, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		role.Name = *update.Name
	}
	if update.Description != nil {
		role.Description = *update.Description
	}
	if update.Icon != nil {
		role.Icon = *update.Icon
	}
	if update.IsAdmin != nil {
		role.IsAdmin = *update.IsAdmin
	}
	if update.IsDefaultRole != nil {
		role.IsDefaultRole = *update.IsDefaultRole
	}

	result := db.Save(role)
	if result.Error != nil {
		if dberr.IsDuplicateKey(result.Error) {
			return nil, ErrRoleAlreadyExists
		}
		return nil, result.Error
	}

	return role, nil
}

// SoftDelete marks an active role as deleted. The record and its user
// associations are kept, but the role stops granting authority and is no
// longer a valid assignment target.
func SoftDelete(db *gorm.DB, id uint64) error {
	role, err := GetActive(db, id)
	if err != nil {
		return err
	}

	now := time.Now()
	role.Deleted = true
	role.DeletedAt = &now

	return db.Save(role).Error
}

// Search returns a page of active roles, optionally filtered by a
// case-insensitive contains match on the name.
func Search(db *gorm.DB, term string, page, size int, asc bool) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Role{}).Where("deleted = ?", false)

	if term != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%")
	}

	order := "id DESC"
	if asc {
		order = "id ASC"
	}

	var roles []models.Role
	result := tx.Order(order).Offset(page * size).Limit(size).Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}
