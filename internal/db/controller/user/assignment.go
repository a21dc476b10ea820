package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/controller/role"
	"github.com/usergate/usergate/internal/db/dberr"
	"github.com/usergate/usergate/internal/db/models"
)

// ErrDuplicateRoleAssignment is returned when at least one user of an add
// batch already holds the role. The whole batch is rejected in that case.
var ErrDuplicateRoleAssignment = errors.New("the user already has this role")

// AddRoleToUsers assigns an active role to every resolved user in one
// transaction. Unknown user ids are dropped from the batch; an empty resolved
// set fails with ErrUsersNotFound. The add is all-or-nothing: if any resolved
// user already holds the role, the composite key on the join table fires,
// the transaction rolls back and no user is changed.
func AddRoleToUsers(db *gorm.DB, roleID uint64, userIDs []uint64) ([]models.User, error) {
	r, users, err := resolveBatch(db, roleID, userIDs)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			link := models.UserRole{UserID: users[i].ID, RoleID: r.ID}
			if err := tx.Create(&link).Error; err != nil {
				if dberr.IsDuplicateKey(err) {
					return ErrDuplicateRoleAssignment
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Roles = append(users[i].Roles, *r)
	}

	return users, nil
}

// RemoveRoleFromUsers removes a role from every resolved user in one
// transaction. Unlike the add, removal is best effort per user: users not
// holding the role are left untouched and do not fail the batch.
func RemoveRoleFromUsers(db *gorm.DB, roleID uint64, userIDs []uint64) ([]models.User, error) {
	r, users, err := resolveBatch(db, roleID, userIDs)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint64, 0, len(users))
		for i := range users {
			ids = append(ids, users[i].ID)
		}

		return tx.Where("role_id = ? AND user_id IN ?", r.ID, ids).
			Delete(&models.UserRole{}).Error
	})
	if err != nil {
		return nil, err
	}

	for i := range users {
		kept := users[i].Roles[:0]
		for _, held := range users[i].Roles {
			if held.ID != r.ID {
				kept = append(kept, held)
			}
		}
		users[i].Roles = kept
	}

	return users, nil
}

// resolveBatch loads the active target role and the requested users.
// The role is resolved first so an unknown role fails before any user lookup.
func resolveBatch(db *gorm.DB, roleID uint64, userIDs []uint64) (*models.Role, []models.User, error) {
	if db == nil {
		return nil, nil, ErrDBNil
	}

	r, err := role.GetActive(db, roleID)
	if err != nil {
		return nil, nil, err
	}

	users, err := FindByIDs(db, userIDs)
	if err != nil {
		return nil, nil, err
	}

	if len(users) == 0 {
		return nil, nil, ErrUsersNotFound
	}

	return r, users, nil
}
