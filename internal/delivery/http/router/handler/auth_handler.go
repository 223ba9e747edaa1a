package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/delivery/http/response"
	"ridehail/internal/domain/entity"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves registration, login and the current identity.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Name     string      `json:"name" validate:"required"`
	Phone    string      `json:"phone"`
	Role     entity.Role `json:"role" validate:"omitempty,oneof=user driver"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the account with a fresh access token.
type AuthResponse struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Register handles account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toAuthResponse(out))
}

// Login handles password login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAuthResponse(out))
}

// Me returns the authenticated caller's account
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authUC.Me(c.Request().Context(), deliverycontext.GetActor(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": user})
}

func toAuthResponse(out *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{User: out.User, Token: out.Token, ExpiresAt: out.ExpiresAt}
}
