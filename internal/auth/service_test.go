package auth

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedUser inserts a user with the given roles and a hashed password.
func seedUser(t *testing.T, db *gorm.DB, email, password string, deleted bool, roles ...models.Role) *models.User {
	t.Helper()

	u := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  models.HashPassword(password),
		Age:       30,
		Deleted:   deleted,
		Roles:     roles,
	}

	err := db.Create(u).Error
	require.NoError(t, err, "failed to seed test user")

	return u
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, NewCodec("test-secret", time.Hour))

	seedUser(t, db, "alice@example.com", "s3cret", false)
	seedUser(t, db, "gone@example.com", "s3cret", true)

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{
			name:     "valid credentials",
			email:    "alice@example.com",
			password: "s3cret",
		},
		{
			name:          "wrong password",
			email:         "alice@example.com",
			password:      "wrong",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "unknown user",
			email:         "nobody@example.com",
			password:      "s3cret",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "soft deleted user",
			email:         "gone@example.com",
			password:      "s3cret",
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := service.Login(tc.email, tc.password)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				// the token subject is the login e-mail
				subject, err := service.Codec().Verify(token)
				require.NoError(t, err)
				assert.Equal(t, tc.email, subject)
			}
		})
	}
}

func TestLoginErrorDoesNotLeakUserExistence(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, NewCodec("test-secret", time.Hour))

	seedUser(t, db, "alice@example.com", "s3cret", false)

	_, errWrongPassword := service.Login("alice@example.com", "wrong")
	_, errUnknownUser := service.Login("nobody@example.com", "wrong")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownUser)
	assert.Equal(t, errWrongPassword, errUnknownUser)
}
