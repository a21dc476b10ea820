package user

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	"github.com/usergate/usergate/internal/config"
	"github.com/usergate/usergate/internal/db/models"
	"github.com/usergate/usergate/internal/web/handler"
	"github.com/usergate/usergate/internal/web/middleware/auth"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, string, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Role{}, &models.UserRole{})
	require.NoError(t, err, "failed to migrate test database")

	userRole := models.Role{Name: "USER", IsDefaultRole: true}
	require.NoError(t, db.Create(&userRole).Error)

	alice := &models.User{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Password:  "fake-hash",
		Age:       30,
		Roles:     []models.Role{userRole},
	}
	require.NoError(t, db.Create(alice).Error)

	codec := coreauth.NewCodec("test-secret", time.Hour)
	token, err := codec.Issue("alice@example.com")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(auth.New(db, codec))

	s := Service{}
	s.Init(app, &config.Config{}, db)

	return app, db, token, alice
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestEndpointsRequireAuthentication(t *testing.T) {
	app, _, _, alice := setupTestApp(t)

	testCases := []struct {
		name   string
		method string
		path   string
	}{
		{name: "search", method: http.MethodPost, path: Path + "/search"},
		{name: "get", method: http.MethodGet, path: fmt.Sprintf("%s/%d", Path, alice.ID)},
		{name: "patch", method: http.MethodPatch, path: fmt.Sprintf("%s/%d", Path, alice.ID)},
		{name: "delete", method: http.MethodDelete, path: fmt.Sprintf("%s/%d", Path, alice.ID)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGet(t *testing.T) {
	app, _, token, alice := setupTestApp(t)

	t.Run("existing user", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("%s/%d", Path, alice.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "alice@example.com", got["email"])
		assert.NotContains(t, got, "password")
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, Path+"/9999", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, Path+"/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSearch(t *testing.T) {
	app, db, token, _ := setupTestApp(t)

	require.NoError(t, db.Create(&models.User{
		FirstName: "Bob", LastName: "Jones", Email: "bob@example.com", Password: "fake-hash",
	}).Error)

	t.Run("all users", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, Path+"/search", token, handler.SearchBody{})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page handler.PaginatedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		assert.Equal(t, 2, page.Total)
	})

	t.Run("filtered by term", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, Path+"/search", token, handler.SearchBody{Search: "bob"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page handler.PaginatedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		assert.Equal(t, 1, page.Total)
	})
}

func TestPatch(t *testing.T) {
	app, _, token, alice := setupTestApp(t)

	t.Run("partial update", func(t *testing.T) {
		firstName := "Alicia"

		resp := doRequest(t, app, http.MethodPatch, fmt.Sprintf("%s/%d", Path, alice.ID),
			token, UpdateRequest{FirstName: &firstName})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Alicia", got["firstName"])
		assert.Equal(t, "Smith", got["lastName"])
	})

	t.Run("validation failure", func(t *testing.T) {
		age := 10

		resp := doRequest(t, app, http.MethodPatch, fmt.Sprintf("%s/%d", Path, alice.ID),
			token, UpdateRequest{Age: &age})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		firstName := "Nobody"

		resp := doRequest(t, app, http.MethodPatch, Path+"/9999", token, UpdateRequest{FirstName: &firstName})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDelete(t *testing.T) {
	app, db, token, _ := setupTestApp(t)

	bob := &models.User{Email: "bob@example.com", Password: "fake-hash"}
	require.NoError(t, db.Create(bob).Error)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("%s/%d", Path, bob.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack handler.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.True(t, ack.Acknowledged)

	// record kept, excluded from active lookups
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("%s/%d", Path, bob.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var stored models.User
	require.NoError(t, db.First(&stored, bob.ID).Error)
	assert.True(t, stored.Deleted)
}
