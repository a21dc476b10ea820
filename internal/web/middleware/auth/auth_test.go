package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	coreauth "github.com/usergate/usergate/internal/auth"
	"github.com/usergate/usergate/internal/db/models"
)

// setupTestApp wires a fiber app with the auth middleware, three guarded
// routes and an in-memory database holding one admin and one regular user.
func setupTestApp(t *testing.T) (*fiber.App, *coreauth.Codec, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{})
	require.NoError(t, err, "failed to migrate test database")

	userRole := models.Role{Name: "USER", IsDefaultRole: true}
	adminRole := models.Role{Name: "ADMIN", IsAdmin: true}
	require.NoError(t, db.Create(&userRole).Error)
	require.NoError(t, db.Create(&adminRole).Error)

	require.NoError(t, db.Create(&models.User{
		Email:    "admin@example.com",
		Password: "fake-hash",
		Roles:    []models.Role{userRole, adminRole},
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Email:    "user@example.com",
		Password: "fake-hash",
		Roles:    []models.Role{userRole},
	}).Error)

	codec := coreauth.NewCodec("test-secret", time.Hour)

	app := fiber.New()
	app.Use(New(db, codec))

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app.Get("/public", Require(Public()), ok)
	app.Get("/private", Require(Authenticated()), ok)
	app.Get("/admin", Require(Authority("ADMIN")), ok)

	return app, codec, db
}

// request performs an app.Test round trip with an optional bearer token.
func request(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestGuards(t *testing.T) {
	app, codec, _ := setupTestApp(t)

	adminToken, err := codec.Issue("admin@example.com")
	require.NoError(t, err)

	userToken, err := codec.Issue("user@example.com")
	require.NoError(t, err)

	testCases := []struct {
		name           string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "public route anonymous", path: "/public", expectedStatus: http.StatusOK},
		{name: "public route with token", path: "/public", token: userToken, expectedStatus: http.StatusOK},
		{name: "private route anonymous", path: "/private", expectedStatus: http.StatusUnauthorized},
		{name: "private route with token", path: "/private", token: userToken, expectedStatus: http.StatusOK},
		{name: "admin route anonymous", path: "/admin", expectedStatus: http.StatusUnauthorized},
		{name: "admin route as regular user", path: "/admin", token: userToken, expectedStatus: http.StatusForbidden},
		{name: "admin route as admin", path: "/admin", token: adminToken, expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := request(t, app, tc.path, tc.token)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestInvalidTokensAreRejectedEverywhere(t *testing.T) {
	app, codec, _ := setupTestApp(t)

	valid, err := codec.Issue("user@example.com")
	require.NoError(t, err)

	wrongSecret, err := coreauth.NewCodec("other-secret", time.Hour).Issue("user@example.com")
	require.NoError(t, err)

	expired, err := coreauth.NewCodec("test-secret", -time.Hour).Issue("user@example.com")
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage token", token: "garbage"},
		{name: "tampered token", token: valid + "x"},
		{name: "wrong secret", token: wrongSecret},
		{name: "expired token", token: expired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// even the public route rejects a presented invalid token
			resp := request(t, app, "/public", tc.token)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestTokenForDeletedUserIsRejected(t *testing.T) {
	app, codec, db := setupTestApp(t)

	token, err := codec.Issue("user@example.com")
	require.NoError(t, err)

	// token is valid until the directory stops resolving the subject
	resp := request(t, app, "/private", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	err = db.Model(&models.User{}).
		Where("email = ?", "user@example.com").
		Updates(map[string]interface{}{"deleted": true}).Error
	require.NoError(t, err)

	resp = request(t, app, "/private", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNonBearerAuthorizationIsAnonymous(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
