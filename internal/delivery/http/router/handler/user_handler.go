package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/delivery/http/response"
	"ridehail/internal/domain/entity"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UpdateUserRequest represents the request body for a partial user update
type UpdateUserRequest struct {
	Name     *string      `json:"name" validate:"omitempty,min=1"`
	Phone    *string      `json:"phone"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Password *string      `json:"password" validate:"omitempty,min=6"`
	Role     *entity.Role `json:"role" validate:"omitempty,oneof=user driver admin"`
}

// ListUsers handles listing every user
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.List(c.Request().Context(), deliverycontext.GetActor(c))
	if err != nil {
		return err
	}

	return response.List(c, "users", users)
}

// GetUser handles retrieving one user
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUC.Get(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": user})
}

// UpdateUser handles partial user updates
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.Update(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"), &usecase.UpdateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": user})
}

// DeleteUser handles user removal
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userUC.Delete(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
