package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/infra/auth"
	"ridehail/internal/infra/geo"
	"ridehail/internal/infra/persistence/memory"
	"ridehail/internal/infra/qrcode"
	mockSvc "ridehail/internal/mocks/service"
	"ridehail/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// serviceFixtures wires every service over one fresh in-memory store.
type serviceFixtures struct {
	store     *memory.Store
	publisher *mockSvc.MockEventPublisher
	tokens    service.TokenService

	auth      usecase.AuthUsecase
	users     usecase.UserUsecase
	trips     usecase.TripUsecase
	drivers   usecase.DriverUsecase
	vehicles  usecase.VehicleUsecase
	payments  usecase.PaymentUsecase
	ratings   usecase.RatingUsecase
	analytics usecase.AnalyticsUsecase
	demo      usecase.DemoUsecase

	mu     sync.Mutex
	events []*service.DomainEvent
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth:   &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour},
		QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "http://localhost:8080"},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServices(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := testConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	f := &serviceFixtures{
		store:     memory.NewStore(nil),
		publisher: mockSvc.NewMockEventPublisher(t),
		tokens:    tokens,
	}
	f.publisher.EXPECT().
		Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, event *service.DomainEvent) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.events = append(f.events, event)
		}).
		Return(nil).
		Maybe()

	hasher := auth.NewBcryptHasher(cfg)
	logger := testLogger()

	f.auth = NewAuthService(AuthServiceParams{Store: f.store, Hasher: hasher, TokenService: tokens, Logger: logger})
	f.users = NewUserService(UserServiceParams{Store: f.store, Hasher: hasher, Logger: logger})
	f.trips = NewTripService(TripServiceParams{
		Store:     f.store,
		Estimator: geo.NewFareEstimator(cfg),
		Publisher: f.publisher,
		Logger:    logger,
	})
	f.drivers = NewDriverService(DriverServiceParams{Store: f.store, Logger: logger})
	f.vehicles = NewVehicleService(VehicleServiceParams{Store: f.store, Logger: logger})
	f.payments = NewPaymentService(PaymentServiceParams{
		Store:     f.store,
		QRCode:    qrcode.NewQRCodeService(cfg),
		Publisher: f.publisher,
		Logger:    logger,
	})
	f.ratings = NewRatingService(RatingServiceParams{Store: f.store, Publisher: f.publisher, Logger: logger})
	f.analytics = NewAnalyticsService(AnalyticsServiceParams{Store: f.store, Logger: logger})
	f.demo = NewDemoService(DemoServiceParams{Store: f.store, Logger: logger})

	return f
}

// register creates an account through the auth service and returns it as an actor.
func (f *serviceFixtures) register(t *testing.T, email string, role entity.Role) *usecase.Actor {
	t.Helper()

	out, err := f.auth.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "Test " + role.String(),
		Role:     role,
	})
	require.NoError(t, err)

	return &usecase.Actor{UserID: out.User.ID, Email: out.User.Email, Role: out.User.Role}
}

// driverOf returns the driver profile created when actor registered as a driver.
func (f *serviceFixtures) driverOf(t *testing.T, actor *usecase.Actor) *entity.Driver {
	t.Helper()

	drivers, err := f.store.Drivers().Find(context.Background(), nil)
	require.NoError(t, err)
	for _, d := range drivers {
		if d.UserID == actor.UserID {
			return d
		}
	}
	t.Fatalf("no driver profile for %s", actor.UserID)

	return nil
}

func (f *serviceFixtures) publishedTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}

	return types
}

func adminActor() *usecase.Actor {
	return &usecase.Actor{UserID: "admin-1", Email: "admin@ridehail.demo", Role: entity.RoleAdmin}
}

func ptr[T any](v T) *T { return &v }

var errDriverWrite = errors.New("driver write failed")

// flakyDriverStore wraps a memory store so the next failures driver writes
// return errDriverWrite.
type flakyDriverStore struct {
	*memory.Store

	failures int
}

func (s *flakyDriverStore) Drivers() repository.DriverRepository {
	return &flakyDrivers{DriverRepository: s.Store.Drivers(), store: s}
}

type flakyDrivers struct {
	repository.DriverRepository

	store *flakyDriverStore
}

func (d *flakyDrivers) fail() bool {
	if d.store.failures == 0 {
		return false
	}
	d.store.failures--

	return true
}

func (d *flakyDrivers) Create(ctx context.Context, record *entity.Driver) error {
	if d.fail() {
		return errDriverWrite
	}

	return d.DriverRepository.Create(ctx, record)
}

func (d *flakyDrivers) Update(ctx context.Context, id string, patch entity.Patch[entity.Driver]) (*entity.Driver, error) {
	if d.fail() {
		return nil, errDriverWrite
	}

	return d.DriverRepository.Update(ctx, id, patch)
}
