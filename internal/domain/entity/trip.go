package entity

import "time"

// TripStatus is the lifecycle label of a trip. Any transition is allowed.
type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusCancelled TripStatus = "cancelled"
)

func (s TripStatus) String() string {
	return string(s)
}

func (s TripStatus) IsValid() bool {
	switch s {
	case TripStatusActive, TripStatusCompleted, TripStatusScheduled, TripStatusCancelled:
		return true
	default:
		return false
	}
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Trip is a single ride requested by a user and optionally served by a driver.
type Trip struct {
	ID            string        `json:"id" firestore:"id"`
	UserID        string        `json:"userId" firestore:"user_id"`
	DriverID      string        `json:"driverId,omitempty" firestore:"driver_id"`
	From          string        `json:"from" firestore:"from"`
	To            string        `json:"to" firestore:"to"`
	FromLocation  *GeoPoint     `json:"fromLocation,omitempty" firestore:"from_location"`
	ToLocation    *GeoPoint     `json:"toLocation,omitempty" firestore:"to_location"`
	DistanceKm    float64       `json:"distanceKm" firestore:"distance_km"`
	DurationMin   int           `json:"durationMin" firestore:"duration_min"`
	Status        TripStatus    `json:"status" firestore:"status"`
	Price         float64       `json:"price" firestore:"price"`
	City          string        `json:"city" firestore:"city"`
	VehicleType   VehicleType   `json:"vehicleType" firestore:"vehicle_type"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty" firestore:"payment_method"`
	ScheduledAt   *time.Time    `json:"scheduledAt,omitempty" firestore:"scheduled_at"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty" firestore:"completed_at"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" firestore:"updated_at"`
}

func (t *Trip) RecordID() string { return t.ID }

func (t *Trip) RecordKind() Kind { return KindTrip }

func (t *Trip) Touch(now time.Time) { t.UpdatedAt = now }

func (t *Trip) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return t.ID, true
	case FieldUserID:
		return t.UserID, true
	case FieldDriverID:
		return t.DriverID, true
	case FieldStatus:
		return t.Status.String(), true
	case FieldCity:
		return t.City, true
	case FieldPrice:
		return t.Price, true
	case FieldType:
		return t.VehicleType.String(), true
	default:
		return nil, false
	}
}

// TripUpdate lists the mutable trip fields.
type TripUpdate struct {
	DriverID      *string        `json:"driverId,omitempty"`
	From          *string        `json:"from,omitempty"`
	To            *string        `json:"to,omitempty"`
	FromLocation  *GeoPoint      `json:"fromLocation,omitempty"`
	ToLocation    *GeoPoint      `json:"toLocation,omitempty"`
	DistanceKm    *float64       `json:"distanceKm,omitempty"`
	DurationMin   *int           `json:"durationMin,omitempty"`
	Status        *TripStatus    `json:"status,omitempty"`
	Price         *float64       `json:"price,omitempty"`
	City          *string        `json:"city,omitempty"`
	VehicleType   *VehicleType   `json:"vehicleType,omitempty"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	ScheduledAt   *time.Time     `json:"scheduledAt,omitempty"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
}

// Apply merges the set fields into t.
func (p TripUpdate) Apply(t *Trip) {
	if p.DriverID != nil {
		t.DriverID = *p.DriverID
	}
	if p.From != nil {
		t.From = *p.From
	}
	if p.To != nil {
		t.To = *p.To
	}
	if p.FromLocation != nil {
		loc := *p.FromLocation
		t.FromLocation = &loc
	}
	if p.ToLocation != nil {
		loc := *p.ToLocation
		t.ToLocation = &loc
	}
	if p.DistanceKm != nil {
		t.DistanceKm = *p.DistanceKm
	}
	if p.DurationMin != nil {
		t.DurationMin = *p.DurationMin
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.City != nil {
		t.City = *p.City
	}
	if p.VehicleType != nil {
		t.VehicleType = *p.VehicleType
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	if p.ScheduledAt != nil {
		at := *p.ScheduledAt
		t.ScheduledAt = &at
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		t.CompletedAt = &at
	}
}
