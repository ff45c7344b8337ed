package handlers

import (
	"errors"
	"time"

	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles registration, login and member views
type UserHandler struct {
	userService *services.UserService
	cfg         *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// RefreshRequest represents refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles POST /users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.Register(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name and Email are required.")
		case errors.Is(err, domain.ErrInvalidEmail):
			return response.BadRequest(c, "Invalid email address.")
		case errors.Is(err, domain.ErrPasswordMismatch):
			return response.BadRequest(c, "Passwords do not match.")
		case errors.Is(err, domain.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters.")
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return response.BadRequest(c, "This email is already registered.")
		default:
			return response.InternalServerError(c, "An error occurred while saving.")
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Registration successful",
		"userId":   user.ID,
		"userName": user.FullName,
		"email":    user.Email,
	})
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.userService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Email and Password are required.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password.")
		default:
			return response.InternalServerError(c, "An error occurred while logging in.")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return c.JSON(fiber.Map{
		"message":  "Login successful",
		"userId":   result.User.UserID,
		"userName": result.User.FullName,
		"email":    result.User.Email,
		"role":     result.User.Role,
		"token":    result.AccessToken,
	})
}

// Refresh handles POST /users/refresh
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token required")
	}

	result, err := h.userService.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			return response.Unauthorized(c, "Refresh token expired")
		case errors.Is(err, domain.ErrTokenInvalid):
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "An error occurred while refreshing.")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return c.JSON(fiber.Map{
		"token": result.AccessToken,
	})
}

// Logout handles POST /users/logout
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if err := h.userService.Logout(c.Context(), refreshToken); err != nil {
		return response.InternalServerError(c, "An error occurred while logging out.")
	}

	h.clearAuthCookies(c)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// ListUsers handles GET /users/all
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load users")
	}
	return c.JSON(users)
}

// ListBorrowings handles GET /users/borrowings
func (h *UserHandler) ListBorrowings(c *fiber.Ctx) error {
	borrowings, err := h.userService.ListBorrowings(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load borrowings")
	}
	return c.JSON(borrowings)
}

// setAuthCookies sets access and refresh token cookies
func (h *UserHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.RefreshTokenDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Cookie.Secure,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
		Path:     "/",
	})
}

// clearAuthCookies expires both auth cookies
func (h *UserHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
	}
}
