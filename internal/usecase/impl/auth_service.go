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

// authService implements the AuthUsecase interface.
type authService struct {
	base
	hasher       service.PasswordHasher
	tokenService service.TokenService
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Store        repository.Store
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		base:         newBase(params.Store, params.Logger),
		hasher:       params.Hasher,
		tokenService: params.TokenService,
	}
}

// Register creates an account with a unique email. Registering as a driver
// also creates the linked driver profile.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleDriver {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be user or driver")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.String("role", role.String()))

	_, err := repository.FindOne(ctx, srv.store.Users(), repository.Where(entity.FieldEmail, email))
	if err == nil {
		srv.log(ctx).Warn("Registration with existing email", slog.String("email", email))

		return nil, domainerrors.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError(err, domainerrors.ErrUserNotFound, "failed to look up email")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	id, now := srv.stamp()
	user := &entity.User{
		ID:        id,
		Email:     email,
		Password:  hashed,
		Name:      input.Name,
		Phone:     input.Phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The account and a driver's profile are stored together or not at all.
	err = srv.tx.Execute(ctx, func(txStore repository.Store) error {
		if err := txStore.Users().Create(ctx, user); err != nil {
			return storeError(err, domainerrors.ErrUserNotFound, "failed to create user during registration")
		}
		if role != entity.RoleDriver {
			return nil
		}

		driverID, _ := srv.stamp()
		driver := &entity.Driver{
			ID:          driverID,
			UserID:      user.ID,
			Name:        user.Name,
			Phone:       user.Phone,
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		return storeError(txStore.Drivers().Create(ctx, driver), domainerrors.ErrDriverNotFound, "failed to create driver profile during registration")
	})
	if err != nil {
		srv.log(ctx).Error("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.String("userID", user.ID))

	return srv.issue(user)
}

// Login verifies the password and issues a token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := repository.FindOne(ctx, srv.store.Users(), repository.Where(entity.FieldEmail, email))
	if errors.Is(err, repository.ErrNotFound) {
		srv.log(ctx).Warn("Login for unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidLogin
	}
	if err != nil {
		return nil, storeError(err, domainerrors.ErrInvalidLogin, "failed to look up user")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		srv.log(ctx).Warn("Login with wrong password", slog.String("userID", user.ID))

		return nil, domainerrors.ErrInvalidLogin
	}

	return srv.issue(user)
}

// Me returns the caller's account.
func (srv *authService) Me(ctx context.Context, actor *usecase.Actor) (*entity.User, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.store.Users().FindByID(ctx, actor.UserID)

	return user, storeError(err, domainerrors.ErrUserNotFound, "failed to find current user")
}

func (srv *authService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{
		User:      user,
		Token:     token,
		ExpiresAt: srv.now().Add(srv.tokenService.TokenTTL()).UTC(),
	}, nil
}
