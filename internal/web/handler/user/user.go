// Package user provides handlers for managing directory users.
package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/config"
	userdb "github.com/usergate/usergate/internal/db/controller/user"
	"github.com/usergate/usergate/internal/web/apierror"
	"github.com/usergate/usergate/internal/web/handler"
	"github.com/usergate/usergate/internal/web/middleware/auth"
)

const (
	// Path is the base path for user management.
	Path = handler.APIRootPath + "/users"
)

// UpdateRequest is the partial profile update payload. Absent fields are
// left unchanged.
type UpdateRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=3,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,min=3,max=30"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Age       *int    `json:"age" validate:"omitempty,gte=18"`
	Phone     *string `json:"phone" validate:"omitempty"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE NO_DIFFERENTIATION NO_IDENTIFY_ANY"`
	Country   *string `json:"country" validate:"omitempty"`
}

// Service provides the user management endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Every endpoint requires an authenticated principal.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	guard := auth.Require(auth.Authenticated())

	app.Post(Path+"/search", guard, s.Search)
	app.Get(Path+"/:id", guard, s.Get)
	app.Patch(Path+"/:id", guard, s.Patch)
	app.Delete(Path+"/:id", guard, s.Delete)
}

// Search returns a page of active users.
func (s *Service) Search(c *fiber.Ctx) error {
	body := new(handler.SearchBody)

	if err := c.BodyParser(body); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(body); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	asc := body.Normalize()

	users, err := userdb.Search(s.db, body.Search, body.Page, body.Size, asc)
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(handler.NewPaginatedResponse(users, len(users), body.Page, body.Size))
}

// Get returns a single active user by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid user id")
	}

	u, err := userdb.FindActiveByID(s.db, uint64(id))
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(u)
}

// Patch applies a partial profile update.
func (s *Service) Patch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid user id")
	}

	req := new(UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	u, err := userdb.Patch(s.db, uint64(id), userdb.Update{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Country:   req.Country,
	})
	if err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(u)
}

// Delete soft deletes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apierror.Respond(c, fiber.StatusBadRequest, "Bad Request", "invalid user id")
	}

	if err := userdb.SoftDelete(s.db, uint64(id)); err != nil {
		return apierror.FromError(c, err)
	}

	return c.JSON(handler.DeleteResponse{DeletedCount: 1, Acknowledged: true})
}
