package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	coreauth "github.com/usergate/usergate/internal/auth"
	"github.com/usergate/usergate/internal/web/apierror"
)

const (
	// bearerPrefix is the expected Authorization header scheme.
	bearerPrefix = "Bearer "

	// principalKey is the fiber.Locals key holding the request principal.
	principalKey = "principal"
)

// New creates the per-request authentication middleware. Requests without a
// bearer Authorization header continue anonymously; guards downstream decide
// whether that is acceptable. Requests presenting a token either establish a
// principal or are rejected before any handler runs.
func New(db *gorm.DB, codec *coreauth.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return c.Next()
		}

		subject, err := codec.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return apierror.FromError(c, err)
		}

		principal, err := coreauth.LoadPrincipal(db, subject)
		if err != nil {
			log.Warn().Str("subject", subject).Msg("valid token for unresolvable principal")
			return apierror.FromError(c, err)
		}

		// request scoped: fiber clears Locals when the request completes
		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// PrincipalFrom returns the principal established by the middleware, or nil
// for anonymous requests.
func PrincipalFrom(c *fiber.Ctx) *coreauth.Principal {
	principal, _ := c.Locals(principalKey).(*coreauth.Principal)
	return principal
}

// Requirement is the declarative access rule of a route.
type Requirement struct {
	kind      requirementKind
	authority string
}

type requirementKind int

const (
	public requirementKind = iota
	authenticated
	withAuthority
)

// Public allows anonymous access.
func Public() Requirement {
	return Requirement{kind: public}
}

// Authenticated requires any established principal.
func Authenticated() Requirement {
	return Requirement{kind: authenticated}
}

// Authority requires a principal holding the named authority.
func Authority(name string) Requirement {
	return Requirement{kind: withAuthority, authority: name}
}

// Require creates the authorization guard for a route. The guard is pure: it
// only inspects the principal established by the middleware. A missing
// principal yields 401; a principal lacking the required authority 403.
func Require(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if req.kind == public {
			return c.Next()
		}

		principal := PrincipalFrom(c)
		if principal == nil {
			return apierror.Respond(c, fiber.StatusUnauthorized, "Unauthorized",
				"Full authentication is required to access this resource")
		}

		if req.kind == withAuthority && !principal.HasAuthority(req.authority) {
			log.Warn().Str("email", principal.Email).Str("authority", req.authority).
				Msg("principal lacks required authority")

			return apierror.Respond(c, fiber.StatusForbidden, "Forbidden", "Access Denied")
		}

		return c.Next()
	}
}
