package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/config"
	roledb "github.com/usergate/usergate/internal/db/controller/role"
	userdb "github.com/usergate/usergate/internal/db/controller/user"
	"github.com/usergate/usergate/internal/db/models"
	"github.com/usergate/usergate/internal/uniuri"
)

// Seeded role names. USER is granted to every sign-up, ADMIN unlocks
// the management endpoints.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// DefaultAdminEmail is used when no admin e-mail is configured.
const DefaultAdminEmail = "admin@localhost"

// seed creates the built-in roles and the initial administrator account.
// It is idempotent: rows that already exist are left untouched.
func seed(cfg *config.Config, db *gorm.DB) {
	userRole := seedRole(db, &models.Role{
		Name:          RoleUser,
		Description:   "Regular user",
		IsDefaultRole: true,
	})

	adminRole := seedRole(db, &models.Role{
		Name:        RoleAdmin,
		Description: "Administrator",
		IsAdmin:     true,
	})

	if userRole == nil || adminRole == nil {
		return
	}

	seedAdmin(cfg, db, adminRole)
}

// seedRole returns the existing active role of the same name or creates it.
func seedRole(db *gorm.DB, role *models.Role) *models.Role {
	existing, err := roledb.FindActiveByName(db, role.Name)
	if err == nil {
		return existing
	}

	if !errors.Is(err, roledb.ErrRoleNotFound) {
		log.Error().Err(err).Str("role", role.Name).Msg("seed: role lookup failed")
		return nil
	}

	if err := roledb.Create(db, role); err != nil {
		log.Error().Err(err).Str("role", role.Name).Msg("seed: role creation failed")
		return nil
	}

	log.Info().Str("role", role.Name).Msg("seed: role created")

	return role
}

// seedAdmin creates the initial administrator if no admin user exists yet.
// Register attaches the default USER role, only ADMIN is passed here.
func seedAdmin(cfg *config.Config, db *gorm.DB, adminRole *models.Role) {
	var count int64
	if err := db.Model(&models.UserRole{}).
		Where("role_id = ?", adminRole.ID).
		Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("seed: admin lookup failed")
		return
	}

	if count > 0 {
		return
	}

	email := cfg.Auth.AdminEmail
	if email == "" {
		email = DefaultAdminEmail
	}

	password := cfg.Auth.AdminPassword
	if password == "" {
		password = uniuri.NewLen(16)

		// printed once so the operator can log in after first start
		log.Warn().Str("email", email).Str("password", password).
			Msg("seed: generated initial admin credentials, change the password after first login")
	}

	admin := &models.User{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     email,
		Password:  models.HashPassword(password),
		Age:       18,
		Gender:    "NO_IDENTIFY_ANY",
		Country:   "N/A",
		Roles:     []models.Role{*adminRole},
	}

	if err := userdb.Register(db, admin); err != nil {
		log.Error().Err(err).Msg("seed: admin creation failed")
		return
	}

	log.Info().Str("email", email).Msg("seed: initial admin created")
}
