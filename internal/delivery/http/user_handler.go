package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IsmaelSWO/league-backend/internal/delivery/http/dto"
	"github.com/IsmaelSWO/league-backend/internal/domain"
)

// UserHandler handles manager listing and budget updates
type UserHandler struct {
	users domain.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

// ListUsers returns every manager
// GET /api/users
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.UsersResponse{Users: users})
}

// SetBudget overwrites a manager's budget
// PATCH /api/users/pagarclausula/:uid
func (h *UserHandler) SetBudget(c echo.Context) error {
	userID, err := uuidParam(c, "uid", "No se pudo encontrar al usuario con ese id.")
	if err != nil {
		return err
	}

	var req dto.SetBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Presupuesto == nil {
		return invalidInput(msgInvalidPayload)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	user, err := h.users.SetBudget(ctx, userID, *req.Presupuesto)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.UserResponse{User: user})
}
