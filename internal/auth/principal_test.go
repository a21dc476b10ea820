package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usergate/usergate/internal/db/models"
)

func TestLoadPrincipal(t *testing.T) {
	db := setupTestDB(t)

	userRole := models.Role{Name: "USER", IsDefaultRole: true}
	adminRole := models.Role{Name: "ADMIN", IsAdmin: true}
	deletedRole := models.Role{Name: "LEGACY", Deleted: true}

	// create the roles up front so attaching them to several users
	// upserts the existing rows instead of recreating them
	require.NoError(t, db.Create(&userRole).Error)
	require.NoError(t, db.Create(&adminRole).Error)
	require.NoError(t, db.Create(&deletedRole).Error)

	admin := seedUser(t, db, "admin@example.com", "s3cret", false, userRole, adminRole)
	seedUser(t, db, "legacy@example.com", "s3cret", false, deletedRole)
	seedUser(t, db, "gone@example.com", "s3cret", true, userRole)

	t.Run("authorities derived from active roles", func(t *testing.T) {
		p, err := LoadPrincipal(db, "admin@example.com")
		require.NoError(t, err)

		assert.Equal(t, admin.ID, p.UserID)
		assert.Equal(t, "admin@example.com", p.Email)
		assert.ElementsMatch(t, []string{"USER", "ADMIN"}, p.Authorities)
		assert.True(t, p.HasAuthority("ADMIN"))
		assert.False(t, p.HasAuthority("ROOT"))
	})

	t.Run("soft deleted roles grant no authority", func(t *testing.T) {
		p, err := LoadPrincipal(db, "legacy@example.com")
		require.NoError(t, err)

		assert.Empty(t, p.Authorities)
		assert.False(t, p.HasAuthority("LEGACY"))
	})

	t.Run("soft deleted user", func(t *testing.T) {
		p, err := LoadPrincipal(db, "gone@example.com")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
		assert.Nil(t, p)
	})

	t.Run("unknown subject", func(t *testing.T) {
		p, err := LoadPrincipal(db, "nobody@example.com")
		require.ErrorIs(t, err, ErrPrincipalNotFound)
		assert.Nil(t, p)
	})
}
