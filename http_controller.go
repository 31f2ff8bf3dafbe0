package auth

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aegeanlabs/go-userauth/middleware/tokenguard"
)

// AuthControllerRoutes are the mounted paths
type AuthControllerRoutes struct {
	Register string
	Login    string
	Refresh  string
	Me       string
	Revoke   string
}

// AuthController exposes the authenticator as a JSON API
type AuthController struct {
	Logger Logger
	Auther *Auther
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register: "/users/register",
			Login:    "/users/login",
			Refresh:  "/users/refresh_access_token",
			Me:       "/users/me",
			Revoke:   "/users/:id/refresh_tokens",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	return c
}

func WithAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// RegisterAuthRoutes mounts the public auth routes plus the guarded ones
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Register, controller.RegisterPost)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Refresh, controller.RefreshPost)

	app.Get(controller.Routes.Me, controller.Protected(), controller.MeGet)
	app.Delete(controller.Routes.Revoke, controller.Protected(RoleAdmin), controller.RevokeDelete)
}

// Protected builds the guard middleware for a route. With no arguments
// it only authenticates; pass a role to also gate on it.
func (a *AuthController) Protected(minRole ...UserRole) fiber.Handler {
	cfg := tokenguard.Config{
		Authenticate: func(ctx context.Context, bearerHeader string) (tokenguard.Principal, error) {
			identity, err := a.Auther.Authenticate(ctx, bearerHeader)
			if err != nil {
				return nil, err
			}
			return identity, nil
		},
		ErrorHandler: a.guardErrorHandler,
		ContextEnricher: func(ctx context.Context, principal tokenguard.Principal) context.Context {
			if identity, ok := principal.(Identity); ok {
				return WithIdentity(ctx, identity)
			}
			return ctx
		},
	}

	if len(minRole) > 0 {
		required := minRole[0]
		cfg.Authorize = func(principal tokenguard.Principal) error {
			if identity, ok := principal.(Identity); ok {
				return a.Auther.Authorize(identity, required)
			}
			return ErrUnauthenticated
		}
	}

	return tokenguard.New(cfg)
}

// RegisterRequest payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 30)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	// Self-registration always lands on the standard role; elevated
	// accounts are provisioned out of band.
	user, err := a.Auther.Register(c.UserContext(), payload.Name, payload.Email, payload.Password, RoleUser)
	if err != nil {
		a.Logger.Error("register user error", "error", err)
		return a.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": publicUserResponse(user),
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	tokens, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.JSON(tokens)
}

// RefreshRequest payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate will run validation rules
func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

func (a *AuthController) RefreshPost(c *fiber.Ctx) error {
	payload := new(RefreshRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	accessToken, err := a.Auther.Refresh(c.UserContext(), payload.RefreshToken)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": accessToken,
	})
}

func (a *AuthController) MeGet(c *fiber.Ctx) error {
	principal, ok := tokenguard.PrincipalFromCtx(c)
	if !ok {
		return a.errorResponse(c, ErrUnauthenticated)
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    principal.ID(),
			"name":  principal.Name(),
			"email": principal.Email(),
			"role":  principal.Role(),
		},
	})
}

// RevokeRequest payload
type RevokeRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate will run validation rules
func (r RevokeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// RevokeDelete strips one refresh token from a user's ledger. Admin only.
func (a *AuthController) RevokeDelete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	payload := new(RevokeRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Error parsing body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := a.Auther.RevokeRefreshToken(c.UserContext(), userID, payload.RefreshToken); err != nil {
		return a.errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *AuthController) guardErrorHandler(c *fiber.Ctx, err error) error {
	return a.errorResponse(c, err)
}

// errorResponse maps the error taxonomy onto transport statuses
func (a *AuthController) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": ErrDuplicateEmail.Error(),
		})
	case errors.Is(err, ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid refresh token provided",
		})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": ErrInvalidCredentials.Error(),
		})
	case errors.Is(err, ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden",
		})
	case errors.Is(err, ErrIdentityNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": ErrIdentityNotFound.Error(),
		})
	default:
		a.Logger.Error("unhandled auth error", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}

func publicUserResponse(u *User) fiber.Map {
	return fiber.Map{
		"id":    u.ID.String(),
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
