package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IsmaelSWO/league-backend/internal/delivery/http/dto"
	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	users domain.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users domain.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
	}
}

// Signup registers a manager and returns a session
// POST /api/users/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	session, err := h.users.Signup(ctx, domain.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, session)
}

// Login verifies the credentials and returns a session
// POST /api/users/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	session, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, session)
}
