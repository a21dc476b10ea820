// Package apierror defines the structured error body returned by the whole
// API surface and the mapping from typed internal failures to HTTP statuses.
package apierror

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/usergate/usergate/internal/auth"
	roledb "github.com/usergate/usergate/internal/db/controller/role"
	userdb "github.com/usergate/usergate/internal/db/controller/user"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field         string `json:"field"`
	RejectedValue string `json:"rejectedValue"`
	Message       string `json:"message"`
}

// Body is the error payload shape shared by every failure response.
type Body struct {
	Timestamp   time.Time    `json:"timestamp"`
	Status      int          `json:"status"`
	Error       string       `json:"error"`
	Message     string       `json:"message"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// Respond writes a structured error body with the given status.
func Respond(c *fiber.Ctx, status int, errLabel, message string) error {
	return c.Status(status).JSON(Body{
		Timestamp: time.Now(),
		Status:    status,
		Error:     errLabel,
		Message:   message,
	})
}

// RespondValidation writes a 400 body carrying per-field validation errors.
func RespondValidation(c *fiber.Ctx, fieldErrors []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(Body{
		Timestamp:   time.Now(),
		Status:      fiber.StatusBadRequest,
		Error:       "Bad Request",
		Message:     "Validation failed",
		FieldErrors: fieldErrors,
	})
}

// FromError translates a typed failure from the core into the matching
// response. Unrecognized errors are logged and surface as an opaque 500;
// no internal detail is ever serialized to the client.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Respond(c, fiber.StatusUnauthorized, "Invalid credentials", err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		return Respond(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid token!")
	case errors.Is(err, auth.ErrPrincipalNotFound):
		return Respond(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid token!")
	case errors.Is(err, userdb.ErrDuplicateRoleAssignment):
		return Respond(c, fiber.StatusBadRequest, "Duplicate Key", err.Error())
	case errors.Is(err, userdb.ErrEmailExists), errors.Is(err, roledb.ErrRoleAlreadyExists):
		return Respond(c, fiber.StatusBadRequest, "Duplicate Key",
			"Could not execute statement: Duplicate key or Duplicate entry")
	case errors.Is(err, userdb.ErrUserNotFound),
		errors.Is(err, userdb.ErrUsersNotFound),
		errors.Is(err, roledb.ErrRoleNotFound):
		return Respond(c, fiber.StatusNotFound, "NOT FOUND", err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled internal error")
		return Respond(c, fiber.StatusInternalServerError, "Internal Server Error",
			"An unexpected error occurred")
	}
}
