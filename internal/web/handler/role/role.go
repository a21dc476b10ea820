// Package role provides handlers for role management and for assigning
// roles to batches of users. All endpoints require the ADMIN authority.
package role

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/config"
	roledb "github.com/usergate/usergate/internal/db/controller/role"
	"github.com/usergate/usergate/internal/db/models"
	"github.com/usergate/usergate/internal/web/apierror"
	"github.com/usergate/usergate/internal/web/handler"
	"github.com/usergate/usergate/internal/web/middleware/auth"
)

const (
	// Path is the base path for role management.
	Path = handler.APIRootPath + "/roles"

	// AdminAuthority is the authority required for role management.
	AdminAuthority = "ADMIN"
)

// CreateRequest is the role creation payload.
type CreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Description   string `json:"description" validate:"max=255"`
	Icon          string `json:"icon" validate:"max=100"`
	IsAdmin       bool   `json:"isAdmin"`
	IsDefaultRole bool   `json:"isDefaultRole"`
}

// UpdateRequest is the partial role update payload.
type UpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=255"`
	Icon          *string `json:"icon" validate:"omitempty,max=100"`
	IsAdmin       *bool   `json:"isAdmin"`
	IsDefaultRole *bool   `json:"isDefaultRole"`
}

// Service provides the role management endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind the ADMIN guard.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	guard := auth.Require(auth.Authority(AdminAuthority))

	app.Post(Path, guard, s.Create)
	app.Post(Path+"/search", guard, s.Search)
	app.Post(Path+"/add/to-many-users", guard, s.AddToUsers)
	app.Delete(Path+"/remove/to-many-users", guard, s.RemoveFromUsers)
	app.Get(Path+"/:id", guard, s.Get)
	app.Patch(Path+"/:id", guard, s.Patch)
	app.Delete(Path+"/:id", guard, s.Delete)
}

// Create stores a new role.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(CreateRequest)

	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	role := &models.Role{
		Name:          req.Name,
		Description:   req.Description,
		Icon:          req.Icon,
		IsAdmin:       req.IsAdmin,
		IsDefaultRole: req.IsDefaultRole,
	}

	if err := roledb.Create(s.db, role); err != nil {
		return apierror.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(role)
}

// Search returns a page of active roles.
func (s *Service) Search(c *fiber.Ctx) error {
	body := new(handler.SearchBody)

	if err := c.BodyParser(body); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(body); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	asc := body.Normalize()

	roles, err := roledb.Search(s.db, body.Search, body.Page, body.Size, asc)
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(handler.NewPaginatedResponse(roles, len(roles), body.Page, body.Size))
}

// Get returns a single active role by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid role id")
	}

	role, err := roledb.GetActive(s.db, uint64(id))
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(role)
}

// Patch applies a partial update to a role.
func (s *Service) Patch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid role id")
	}

	req := new(UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	role, err := roledb.Patch(s.db, uint64(id), roledb.Update{
		Name:          req.Name,
		Description:   req.Description,
		Icon:          req.Icon,
		IsAdmin:       req.IsAdmin,
		IsDefaultRole: req.IsDefaultRole,
	})
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(role)
}

// Delete soft deletes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid role id")
	}

	if err := roledb.SoftDelete(s.db, uint64(id)); err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(handler.DeleteResponse{DeletedCount: 1, Acknowledged: true})
}
