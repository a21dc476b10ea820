// Package signup provides the public user registration endpoint.
package signup

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/usergate/usergate/internal/config"
	userdb "github.com/usergate/usergate/internal/db/controller/user"
	"github.com/usergate/usergate/internal/db/models"
	"github.com/usergate/usergate/internal/web/apierror"
	"github.com/usergate/usergate/internal/web/handler"
)

const (
	// Path is the sign-up endpoint path.
	Path = handler.APIRootPath + "/auth/signup"
)

// phonePattern matches international phone numbers with optional separators.
var phonePattern = regexp.MustCompile(
	`^((\+[1-9]{1,4}[ -]?)|(\([0-9]{2,3}\)[ -]?)|([0-9]{2,4})[ -]?)*?[0-9]{3,4}[ -]?[0-9]{3,4}$`)

// Request is the sign-up payload.
type Request struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=30"`
	LastName  string `json:"lastName" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Age       int    `json:"age" validate:"gte=18"`
	Password  string `json:"password" validate:"required,min=4,max=50"`
	Phone     string `json:"phone" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=MALE FEMALE NO_DIFFERENTIATION NO_IDENTIFY_ANY"`
	Country   string `json:"country" validate:"required"`
}

// Service is the sign-up handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the sign-up route.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	app.Post(Path, s.Post)
}

// Post handles user registration. The new user is created with the hashed
// password and the active default role, and returned with status 201.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return apierror.Respond(c, fiber.StatusBadRequest, "Json Error", err.Error())
	}

	if err := s.validator.Struct(req); err != nil {
		return apierror.RespondValidation(c, handler.FieldErrors(err))
	}

	if fieldErrors := s.checkUniqueness(req); len(fieldErrors) > 0 {
		return apierror.RespondValidation(c, fieldErrors)
	}

	u := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Password:  models.HashPassword(req.Password),
		Phone:     req.Phone,
		Gender:    req.Gender,
		Country:   req.Country,
	}

	if err := userdb.Register(s.db, u); err != nil {
		log.Error().Err(err).Msg("sign-up failed")
		return apierror.FromError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(u)
}

// checkUniqueness runs the input checks that need the directory: phone shape
// plus e-mail and phone uniqueness.
func (s *Service) checkUniqueness(req *Request) []apierror.FieldError {
	var fieldErrors []apierror.FieldError

	if !phonePattern.MatchString(req.Phone) {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "phone", RejectedValue: req.Phone, Message: "Phone must be a valid phone number",
		})
	}

	if exists, err := userdb.ExistsByEmail(s.db, req.Email); err == nil && exists {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "email", RejectedValue: req.Email, Message: "Email already exists",
		})
	}

	if exists, err := userdb.ExistsByPhone(s.db, req.Phone); err == nil && exists {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field: "phone", RejectedValue: req.Phone, Message: "Phone already exists",
		})
	}

	return fieldErrors
}
