// Package seed builds the demo dataset loaded into a fresh in-memory store.
// Record ids are name-based UUIDs, so the same options always produce the
// same ids and the same shape of data.
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"

	"github.com/google/uuid"
)

const (
	defaultTrips      = 24
	defaultRandomSeed = 42
	idNamespace       = "ridehail.demo/"
)

// Options control the generated dataset.
type Options struct {
	AdminEmail    string
	AdminPassword string
	DemoPassword  string
	Trips         int
	RandomSeed    uint64
	// Now anchors trip timestamps; zero means time.Now.
	Now time.Time
}

// Dataset is a consistent set of records: every trip references a seeded
// user and driver, ratings and payments exist only for completed trips, and
// each driver's rating and totalTrips agree with them.
type Dataset struct {
	Users    []*entity.User    `json:"users"`
	Drivers  []*entity.Driver  `json:"drivers"`
	Vehicles []*entity.Vehicle `json:"vehicles"`
	Trips    []*entity.Trip    `json:"trips"`
	Ratings  []*entity.Rating  `json:"ratings"`
	Payments []*entity.Payment `json:"payments"`
}

type place struct {
	name string
	city string
	loc  entity.GeoPoint
}

type driverProfile struct {
	name    string
	phone   string
	city    string
	brand   string
	model   string
	year    int
	color   string
	plate   string
	vehicle entity.VehicleType
}

var places = []place{
	{name: "Union Square", city: "San Francisco", loc: entity.GeoPoint{Lat: 37.7880, Lng: -122.4075}},
	{name: "Ferry Building", city: "San Francisco", loc: entity.GeoPoint{Lat: 37.7955, Lng: -122.3937}},
	{name: "Mission Dolores Park", city: "San Francisco", loc: entity.GeoPoint{Lat: 37.7596, Lng: -122.4269}},
	{name: "SFO Terminal 2", city: "San Francisco", loc: entity.GeoPoint{Lat: 37.6163, Lng: -122.3863}},
	{name: "Lake Merritt", city: "Oakland", loc: entity.GeoPoint{Lat: 37.8027, Lng: -122.2593}},
	{name: "Jack London Square", city: "Oakland", loc: entity.GeoPoint{Lat: 37.7946, Lng: -122.2770}},
	{name: "UC Berkeley", city: "Berkeley", loc: entity.GeoPoint{Lat: 37.8719, Lng: -122.2585}},
	{name: "Santana Row", city: "San Jose", loc: entity.GeoPoint{Lat: 37.3209, Lng: -121.9476}},
}

var drivers = []driverProfile{
	{name: "Maria Lopez", phone: "+1-415-555-0101", city: "San Francisco", brand: "Toyota", model: "Camry", year: 2021, color: "White", plate: "8ABC123", vehicle: entity.VehicleTypeStandard},
	{name: "James Chen", phone: "+1-415-555-0102", city: "San Francisco", brand: "Tesla", model: "Model S", year: 2023, color: "Black", plate: "9XYZ777", vehicle: entity.VehicleTypePremium},
	{name: "Aisha Khan", phone: "+1-510-555-0103", city: "Oakland", brand: "Honda", model: "Accord", year: 2020, color: "Silver", plate: "7KLM456", vehicle: entity.VehicleTypeStandard},
	{name: "Diego Alvarez", phone: "+1-510-555-0104", city: "Berkeley", brand: "Hyundai", model: "Sonata", year: 2022, color: "Blue", plate: "8QRS890", vehicle: entity.VehicleTypeStandard},
	{name: "Olga Petrova", phone: "+1-408-555-0105", city: "San Jose", brand: "Mercedes-Benz", model: "E-Class", year: 2023, color: "Gray", plate: "9MBZ321", vehicle: entity.VehicleTypePremium},
}

var paymentMethods = []entity.PaymentMethod{entity.PaymentMethodCard, entity.PaymentMethodCash, entity.PaymentMethodWallet}

// ID derives a stable record id from a kind and a name.
func ID(kind entity.Kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(idNamespace+kind.String()+"/"+name)).String()
}

// Generate builds the dataset. Passwords are hashed with hasher; every demo
// account shares one hash of DemoPassword.
func Generate(opts Options, hasher service.PasswordHasher) (*Dataset, error) {
	if opts.Trips <= 0 {
		opts.Trips = defaultTrips
	}
	if opts.RandomSeed == 0 {
		opts.RandomSeed = defaultRandomSeed
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil, errors.New("seed admin credentials are required")
	}
	if opts.DemoPassword == "" {
		opts.DemoPassword = opts.AdminPassword
	}

	adminHash, err := hasher.Hash(opts.AdminPassword)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	demoHash, err := hasher.Hash(opts.DemoPassword)
	if err != nil {
		return nil, errors.Wrap(err, "hash demo password")
	}

	rng := rand.New(rand.NewPCG(opts.RandomSeed, opts.RandomSeed^0x9e3779b97f4a7c15))
	created := opts.Now.Add(-45 * 24 * time.Hour).UTC().Truncate(time.Second)
	ds := &Dataset{}

	admin := &entity.User{
		ID: ID(entity.KindUser, "admin"), Email: opts.AdminEmail, Password: adminHash,
		Name: "Admin", Phone: "+1-415-555-0000", Role: entity.RoleAdmin,
		CreatedAt: created, UpdatedAt: created,
	}
	rider := &entity.User{
		ID: ID(entity.KindUser, "demo"), Email: "demo@ridehail.demo", Password: demoHash,
		Name: "Demo Rider", Phone: "+1-415-555-0100", Role: entity.RoleUser,
		CreatedAt: created, UpdatedAt: created,
	}
	ds.Users = append(ds.Users, admin, rider)

	for i, p := range drivers {
		key := fmt.Sprintf("driver-%d", i+1)
		user := &entity.User{
			ID: ID(entity.KindUser, key), Email: key + "@ridehail.demo", Password: demoHash,
			Name: p.name, Phone: p.phone, Role: entity.RoleDriver,
			CreatedAt: created, UpdatedAt: created,
		}
		driver := &entity.Driver{
			ID: ID(entity.KindDriver, key), UserID: user.ID, Name: p.name, Phone: p.phone,
			VehicleID: ID(entity.KindVehicle, key), IsAvailable: i%2 == 0, City: p.city,
			CreatedAt: created, UpdatedAt: created,
		}
		vehicle := &entity.Vehicle{
			ID: driver.VehicleID, DriverID: driver.ID, Brand: p.brand, Model: p.model,
			Year: p.year, Color: p.color, Plate: p.plate, Type: p.vehicle,
			CreatedAt: created, UpdatedAt: created,
		}
		ds.Users = append(ds.Users, user)
		ds.Drivers = append(ds.Drivers, driver)
		ds.Vehicles = append(ds.Vehicles, vehicle)
	}

	for i := range opts.Trips {
		generateTrip(ds, rng, i, rider, opts.Now)
	}

	settleDrivers(ds)

	return ds, nil
}

func generateTrip(ds *Dataset, rng *rand.Rand, i int, rider *entity.User, now time.Time) {
	driverIdx := rng.IntN(len(ds.Drivers))
	driver := ds.Drivers[driverIdx]
	vehicleType := drivers[driverIdx].vehicle

	from := places[rng.IntN(len(places))]
	to := places[rng.IntN(len(places))]
	for to.name == from.name {
		to = places[rng.IntN(len(places))]
	}

	distance := math.Round((2+rng.Float64()*28)*10) / 10
	price := math.Round(150 + distance*45)
	if vehicleType == entity.VehicleTypePremium {
		price = math.Round(price * 1.6)
	}

	status := pickStatus(rng)
	createdAt := now.Add(-time.Duration(rng.IntN(30*24)) * time.Hour).UTC().Truncate(time.Second)
	method := paymentMethods[rng.IntN(len(paymentMethods))]
	fromLoc, toLoc := from.loc, to.loc

	trip := &entity.Trip{
		ID:            ID(entity.KindTrip, fmt.Sprintf("trip-%d", i+1)),
		UserID:        rider.ID,
		DriverID:      driver.ID,
		From:          from.name,
		To:            to.name,
		FromLocation:  &fromLoc,
		ToLocation:    &toLoc,
		DistanceKm:    distance,
		DurationMin:   int(distance*2.2) + 3,
		Status:        status,
		Price:         price,
		City:          from.city,
		VehicleType:   vehicleType,
		PaymentMethod: method,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	switch status {
	case entity.TripStatusScheduled:
		at := now.Add(time.Duration(1+rng.IntN(72)) * time.Hour).UTC().Truncate(time.Second)
		trip.ScheduledAt = &at
		trip.CreatedAt, trip.UpdatedAt = now.UTC().Truncate(time.Second), now.UTC().Truncate(time.Second)
	case entity.TripStatusCompleted:
		done := createdAt.Add(time.Duration(trip.DurationMin) * time.Minute)
		trip.CompletedAt = &done
		trip.UpdatedAt = done
	case entity.TripStatusActive, entity.TripStatusCancelled:
	}

	ds.Trips = append(ds.Trips, trip)

	if status != entity.TripStatusCompleted {
		return
	}

	ds.Ratings = append(ds.Ratings, &entity.Rating{
		ID:        ID(entity.KindRating, trip.ID),
		TripID:    trip.ID,
		UserID:    rider.ID,
		DriverID:  driver.ID,
		Score:     float64(3 + rng.IntN(3)),
		CreatedAt: trip.UpdatedAt,
		UpdatedAt: trip.UpdatedAt,
	})
	ds.Payments = append(ds.Payments, &entity.Payment{
		ID:            ID(entity.KindPayment, trip.ID),
		TripID:        trip.ID,
		UserID:        rider.ID,
		Amount:        trip.Price,
		Method:        method,
		Status:        entity.PaymentStatusCompleted,
		TransactionID: fmt.Sprintf("TXN%d%04d", trip.UpdatedAt.UnixMilli(), rng.IntN(10000)),
		CreatedAt:     trip.UpdatedAt,
		UpdatedAt:     trip.UpdatedAt,
	})
}

// pickStatus favours completed trips so analytics have data to show.
func pickStatus(rng *rand.Rand) entity.TripStatus {
	switch n := rng.IntN(10); {
	case n < 6:
		return entity.TripStatusCompleted
	case n < 7:
		return entity.TripStatusActive
	case n < 9:
		return entity.TripStatusScheduled
	default:
		return entity.TripStatusCancelled
	}
}

func settleDrivers(ds *Dataset) {
	byDriver := make(map[string][]*entity.Rating)
	for _, r := range ds.Ratings {
		byDriver[r.DriverID] = append(byDriver[r.DriverID], r)
	}

	for _, d := range ds.Drivers {
		ratings := byDriver[d.ID]
		d.TotalTrips = len(ratings)
		d.Rating = entity.AverageScore(ratings)
	}
}

// OptionsFromConfig maps the seed section of the service config.
func OptionsFromConfig(cfg *config.SeedConfig) Options {
	if cfg == nil {
		return Options{}
	}

	return Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoPassword:  cfg.DemoPassword,
		Trips:         cfg.Trips,
		RandomSeed:    cfg.RandomSeed,
	}
}
