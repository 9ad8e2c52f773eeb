package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/datachat-gateway/internal/api/dto"
	"github.com/spec-kit/datachat-gateway/internal/auth"
	"github.com/spec-kit/datachat-gateway/internal/service"
	apperrors "github.com/spec-kit/datachat-gateway/pkg/util"
)

// UsersHandler exposes the signup, signin and authenticate endpoints.
type UsersHandler struct {
	auth       *service.AuthService
	middleware *auth.Middleware
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(authService *service.AuthService, middleware *auth.Middleware) *UsersHandler {
	return &UsersHandler{auth: authService, middleware: middleware}
}

// Signup handles POST /api/v1/user/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid inputs", nil)
	}

	if _, err := h.auth.Register(c.UserContext(), req.Email, req.Password, req.Name); err != nil {
		return clientOrInternal(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// Signin handles POST /api/v1/user/signin.
func (h *UsersHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Incorrect inputs", nil)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return clientOrInternal(err)
	}

	return c.JSON(dto.SigninResponse{
		Message: "Login Successful",
		Token:   token,
	})
}

// Authenticate handles POST /api/v1/user/authenticate. A missing or invalid
// bearer token is a normal negative outcome, answered inline rather than
// through the error pipeline so the body carries the LoggedIn flag.
func (h *UsersHandler) Authenticate(c *fiber.Ctx) error {
	if _, ok := h.middleware.Verify(c.Get(fiber.HeaderAuthorization)); !ok {
		return c.Status(http.StatusUnauthorized).JSON(dto.AuthenticateResponse{
			Message:  "You are not logged in",
			LoggedIn: false,
		})
	}

	return c.JSON(dto.AuthenticateResponse{
		Message:  "You are logged in",
		LoggedIn: true,
	})
}

// clientOrInternal passes user-correctable failures through untouched and
// collapses everything else to the original backend's 400 response.
func clientOrInternal(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.HTTPStatus < http.StatusInternalServerError {
		return err
	}
	return apperrors.NewDomainError("INTERNAL_ERROR", "Internal Server Error", http.StatusBadRequest, nil)
}
