package impl

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	base
	hasher service.PasswordHasher
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	Store  repository.Store
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		base:   newBase(params.Store, params.Logger),
		hasher: params.Hasher,
	}
}

func (srv *userService) List(ctx context.Context, actor *usecase.Actor) ([]*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	users, err := srv.store.Users().Find(ctx, nil)

	return users, storeError(err, domainerrors.ErrUserNotFound, "failed to list users")
}

func (srv *userService) Get(ctx context.Context, actor *usecase.Actor, id string) (*entity.User, error) {
	if !actor.CanAccess(id) {
		return nil, domainerrors.ErrForbidden
	}

	user, err := srv.store.Users().FindByID(ctx, id)

	return user, storeError(err, domainerrors.ErrUserNotFound, "failed to find user")
}

func (srv *userService) Update(ctx context.Context, actor *usecase.Actor, id string, input *usecase.UpdateUserInput) (*entity.User, error) {
	if !actor.CanAccess(id) {
		return nil, domainerrors.ErrForbidden
	}

	update := entity.UserUpdate{Name: input.Name, Phone: input.Phone}

	if input.Role != nil {
		if !actor.IsAdmin() {
			return nil, domainerrors.ErrForbidden.WithDetails("only admins can change roles")
		}
		if !input.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
		}
		update.Role = input.Role
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		existing, err := repository.FindOne(ctx, srv.store.Users(), repository.Where(entity.FieldEmail, email))
		switch {
		case err == nil && existing.ID != id:
			return nil, domainerrors.ErrEmailAlreadyRegistered
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, storeError(err, domainerrors.ErrUserNotFound, "failed to look up email")
		}
		update.Email = &email
	}

	if input.Password != nil {
		hashed, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, domainerrors.ErrPasswordHashFailed
		}
		update.Password = &hashed
	}

	user, err := srv.store.Users().Update(ctx, id, update)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrUserNotFound, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.String("userID", id), slog.String("by", actor.UserID))

	return user, nil
}

// Delete hard-removes the account. Related records are left in place.
func (srv *userService) Delete(ctx context.Context, actor *usecase.Actor, id string) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}

	if err := srv.store.Users().Delete(ctx, id); err != nil {
		return storeError(err, domainerrors.ErrUserNotFound, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id), slog.String("by", actor.UserID))

	return nil
}
