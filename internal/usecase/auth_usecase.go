package usecase

import (
	"context"
	"time"

	"ridehail/internal/domain/entity"
)

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	// Role is user or driver; empty means user.
	Role entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput carries the account and a freshly issued access token.
type AuthOutput struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthUsecase covers registration, login and identity lookup.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Me(ctx context.Context, actor *Actor) (*entity.User, error)
}
