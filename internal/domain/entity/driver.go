package entity

import "time"

// Driver is the operational profile of a user with the driver role.
type Driver struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"userId" firestore:"user_id"`
	Name        string    `json:"name" firestore:"name"`
	Phone       string    `json:"phone" firestore:"phone"`
	Rating      float64   `json:"rating" firestore:"rating"` // mean of all ratings, 0-5
	TotalTrips  int       `json:"totalTrips" firestore:"total_trips"`
	VehicleID   string    `json:"vehicleId,omitempty" firestore:"vehicle_id"`
	IsAvailable bool      `json:"isAvailable" firestore:"is_available"`
	City        string    `json:"city,omitempty" firestore:"city"`
	CreatedAt   time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updated_at"`
}

func (d *Driver) RecordID() string { return d.ID }

func (d *Driver) RecordKind() Kind { return KindDriver }

func (d *Driver) Touch(now time.Time) { d.UpdatedAt = now }

func (d *Driver) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return d.ID, true
	case FieldUserID:
		return d.UserID, true
	case FieldVehicleID:
		return d.VehicleID, true
	case FieldIsAvailable:
		return d.IsAvailable, true
	case FieldCity:
		return d.City, true
	default:
		return nil, false
	}
}

type DriverUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	TotalTrips  *int     `json:"totalTrips,omitempty"`
	VehicleID   *string  `json:"vehicleId,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
	City        *string  `json:"city,omitempty"`
}

func (p DriverUpdate) Apply(d *Driver) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Rating != nil {
		d.Rating = *p.Rating
	}
	if p.TotalTrips != nil {
		d.TotalTrips = *p.TotalTrips
	}
	if p.VehicleID != nil {
		d.VehicleID = *p.VehicleID
	}
	if p.IsAvailable != nil {
		d.IsAvailable = *p.IsAvailable
	}
	if p.City != nil {
		d.City = *p.City
	}
}
