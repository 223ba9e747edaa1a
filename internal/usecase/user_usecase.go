package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// UpdateUserInput lists the fields a caller may change on an account.
// Role is honoured for admins only.
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
	Role     *entity.Role
}

// UserUsecase manages accounts.
type UserUsecase interface {
	List(ctx context.Context, actor *Actor) ([]*entity.User, error)
	Get(ctx context.Context, actor *Actor, id string) (*entity.User, error)
	Update(ctx context.Context, actor *Actor, id string, input *UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, actor *Actor, id string) error
}
