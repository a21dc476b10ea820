// Package login provides the credential login endpoint issuing bearer tokens.
package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/auth"
	"github.com/usergate/usergate/internal/config"
	"github.com/usergate/usergate/internal/web/apierror"
	"github.com/usergate/usergate/internal/web/handler"
)

const (
	// Path is the login endpoint path.
	Path = handler.APIRootPath + "/auth/login"
)

// Request is the login payload.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response carries the issued bearer token.
type Response struct {
	Token string `json:"token"`
}

// Service is the login handler service.
type Service struct {
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	validator   *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the login route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil || authService == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.validator = validator.New()

	app.Post(Path, s.Post)
}

// Post handles the login request. The error message is identical for unknown
// users and wrong passwords so the endpoint cannot be used to enumerate
// accounts.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	token, err := s.authService.Login(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("login failed")
		}

		return apierror.FromError(c, err)
	}

	return c.JSON(Response{Token: token})
}
