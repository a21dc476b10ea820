package role

import (
	"github.com/gofiber/fiber/v2"

	userdb "github.com/usergate/usergate/internal/db/controller/user"
	"github.com/usergate/usergate/internal/web/apierror"
	"github.com/usergate/usergate/internal/web/handler"
)

// AssignmentRequest names a role and the users to attach it to or
// detach it from.
type AssignmentRequest struct {
	RoleID  uint64   `json:"roleId" validate:"required,min=1"`
	UsersID []uint64 `json:"usersId" validate:"required,min=1,dive,min=1"`
}

// AddToUsers grants a role to every listed user. The grant is all or
// nothing: if any user already holds the role the whole batch is
// rejected and no user is changed.
func (s *Service) AddToUsers(c *fiber.Ctx) error {
	req := new(AssignmentRequest)

	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	users, err := userdb.AddRoleToUsers(s.db, req.RoleID, req.UsersID)
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(handler.NewPaginatedResponse(users, len(users), 0, len(users)))
}

// RemoveFromUsers revokes a role from every listed user. Users that do
// not hold the role are skipped, the rest are updated.
func (s *Service) RemoveFromUsers(c *fiber.Ctx) error {
	req := new(AssignmentRequest)

	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	users, err := userdb.RemoveRoleFromUsers(s.db, req.RoleID, req.UsersID)
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(handler.NewPaginatedResponse(users, len(users), 0, len(users)))
}
