// Package firestore is the remote document store. All records share one
// collection and are told apart by their type field.
package firestore

import (
	"context"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"

	gfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultCollection = "records"
	markerID          = "_init"
	markerType        = "meta"
)

// Store is the Firestore implementation of repository.Store.
type Store struct {
	client   *gfs.Client
	cfg      *config.FirestoreConfig
	users    *collection[entity.User, *entity.User]
	trips    *collection[entity.Trip, *entity.Trip]
	drivers  *collection[entity.Driver, *entity.Driver]
	ratings  *collection[entity.Rating, *entity.Rating]
	payments *collection[entity.Payment, *entity.Payment]
	vehicles *collection[entity.Vehicle, *entity.Vehicle]
}

// Open connects through the Firebase Admin SDK. FIRESTORE_EMULATOR_HOST is
// honoured by the underlying client.
func Open(ctx context.Context, cfg *config.FirestoreConfig) (*Store, error) {
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firestore project id must be provided")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	return NewStore(client, cfg, time.Now), nil
}

// NewStore wraps an existing client.
func NewStore(client *gfs.Client, cfg *config.FirestoreConfig, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	name := defaultCollection
	if cfg != nil && cfg.Collection != "" {
		name = cfg.Collection
	}

	return &Store{
		client:   client,
		cfg:      cfg,
		users:    newCollection[entity.User, *entity.User](client, name, entity.KindUser, now),
		trips:    newCollection[entity.Trip, *entity.Trip](client, name, entity.KindTrip, now),
		drivers:  newCollection[entity.Driver, *entity.Driver](client, name, entity.KindDriver, now),
		ratings:  newCollection[entity.Rating, *entity.Rating](client, name, entity.KindRating, now),
		payments: newCollection[entity.Payment, *entity.Payment](client, name, entity.KindPayment, now),
		vehicles: newCollection[entity.Vehicle, *entity.Vehicle](client, name, entity.KindVehicle, now),
	}
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Trips() repository.TripRepository       { return s.trips }
func (s *Store) Drivers() repository.DriverRepository   { return s.drivers }
func (s *Store) Ratings() repository.RatingRepository   { return s.ratings }
func (s *Store) Payments() repository.PaymentRepository { return s.payments }
func (s *Store) Vehicles() repository.VehicleRepository { return s.vehicles }

func (s *Store) Backend() string { return config.BackendFirestore }

// Init creates the marker document that proves the collection is writable.
// An existing marker is left untouched.
func (s *Store) Init(ctx context.Context) error {
	database := ""
	if s.cfg != nil {
		database = s.cfg.Database
	}

	_, err := s.users.coll.Doc(markerID).Create(ctx, map[string]any{
		fieldType:        markerType,
		"database":       database,
		"initialized_at": gfs.ServerTimestamp,
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}

	return errors.Wrap(err, "write firestore init marker")
}

// Ping reads the marker document.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.users.coll.Doc(markerID).Get(ctx); err != nil {
		return errors.Wrap(err, "read firestore init marker")
	}

	return nil
}

func (s *Store) Close() error {
	return errors.WithStack(s.client.Close())
}
