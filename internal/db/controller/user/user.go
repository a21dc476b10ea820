// Package user provides persistence operations for directory users,
// including the batch role assignment engine.
package user

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/controller/role"
	"github.com/usergate/usergate/internal/db/dberr"
	"github.com/usergate/usergate/internal/db/models"
)

const (
	activeByID    = "id = ? AND deleted = ?"
	activeByEmail = "email = ? AND deleted = ?"

	// activeRoles filters preloaded role sets down to non-deleted roles.
	activeRoles = "deleted = ?"
)

var (
	// ErrUserNotFound is returned when no active user matches the query.
	ErrUserNotFound = errors.New("the user does not exist")
	// ErrUsersNotFound is returned when a batch lookup resolves no users at all.
	ErrUsersNotFound = errors.New("the users do not exist")
	// ErrEmailExists is returned when the e-mail address is already registered.
	ErrEmailExists = errors.New("user with this email already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FindActiveByEmail retrieves an active user by exact e-mail match, with the
// user's active roles preloaded. This is the lookup feeding authentication.
func FindActiveByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Preload("Roles", activeRoles, false).
		Where(activeByEmail, email, false).
		First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// FindActiveByID retrieves an active user by id with active roles preloaded.
func FindActiveByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Preload("Roles", activeRoles, false).
		Where(activeByID, id, false).
		First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// FindByIDs retrieves users matching the given ids with their role sets
// preloaded. Unknown ids are silently dropped from the result; callers that
// need strict resolution must compare lengths themselves.
func FindByIDs(db *gorm.DB, ids []uint64) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Preload("Roles").Where("id IN ?", ids).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// ExistsByEmail reports whether any user record holds the given e-mail.
func ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ExistsByPhone reports whether any user record holds the given phone number.
func ExistsByPhone(db *gorm.DB, phone string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	result := db.Model(&models.User{}).Where("phone = ?", phone).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Register stores a new user and assigns the active default role. The
// caller provides the already hashed password. Unique e-mail violations
// surface as ErrEmailExists.
func Register(db *gorm.DB, u *models.User) error {
	if db == nil {
		return ErrDBNil
	}

	defaultRole, err := role.FindDefault(db)
	if err != nil {
		return err
	}

	u.Roles = append(u.Roles, *defaultRole)

	result := db.Create(u)
	if result.Error != nil {
		if dberr.IsDuplicateKey(result.Error) {
			return ErrEmailExists
		}
		return result.Error
	}

	return nil
}

// Update describes a partial profile update. Nil fields are left untouched.
type Update struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *int
	Phone     *string
	Gender    *string
	Country   *string
}

// Patch applies a partial profile update to an active user and returns the
// updated record.
func Patch(db *gorm.DB, id uint64, update Update) (*models.User, error) {
	u, err := FindActiveByID(db, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Age != nil {
		u.Age = *update.Age
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Gender != nil {
		u.Gender = *update.Gender
	}
	if update.Country != nil {
		u.Country = *update.Country
	}

	result := db.Omit("Roles").Save(u)
	if result.Error != nil {
		if dberr.IsDuplicateKey(result.Error) {
			return nil, ErrEmailExists
		}
		return nil, result.Error
	}

	return u, nil
}

// SoftDelete marks an active user as deleted. The record is kept; the user
// can no longer authenticate and is excluded from active lookups.
func SoftDelete(db *gorm.DB, id uint64) error {
	u, err := FindActiveByID(db, id)
	if err != nil {
		return err
	}

	now := time.Now()
	u.Deleted = true
	u.DeletedAt = &now

	return db.Omit("Roles").Save(u).Error
}

// Search returns a page of active users, optionally filtered by a
// case-insensitive contains match on e-mail, first or last name.
func Search(db *gorm.DB, term string, page, size int, asc bool) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.User{}).Preload("Roles", activeRoles, false).Where("deleted = ?", false)

	if term != "" {
		like := "%" + term + "%"
		tx = tx.Where(
			"LOWER(email) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)",
			like,
			like,
			like,
		)
	}

	order := "id DESC"
	if asc {
		order = "id ASC"
	}

	var users []models.User
	result := tx.Order(order).Offset(page * size).Limit(size).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}
