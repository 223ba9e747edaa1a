package entity

import "time"

type VehicleType string

const (
	VehicleTypeStandard VehicleType = "standard"
	VehicleTypePremium  VehicleType = "premium"
)

func (t VehicleType) String() string {
	return string(t)
}

func (t VehicleType) IsValid() bool {
	return t == VehicleTypeStandard || t == VehicleTypePremium
}

// Vehicle belongs to a driver. One per driver is expected but not enforced.
type Vehicle struct {
	ID        string      `json:"id" firestore:"id"`
	DriverID  string      `json:"driverId" firestore:"driver_id"`
	Brand     string      `json:"brand" firestore:"brand"`
	Model     string      `json:"model" firestore:"model"`
	Year      int         `json:"year,omitempty" firestore:"year"`
	Color     string      `json:"color,omitempty" firestore:"color"`
	Plate     string      `json:"plate" firestore:"plate"`
	Type      VehicleType `json:"type" firestore:"vehicle_type"`
	CreatedAt time.Time   `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" firestore:"updated_at"`
}

func (v *Vehicle) RecordID() string { return v.ID }

func (v *Vehicle) RecordKind() Kind { return KindVehicle }

func (v *Vehicle) Touch(now time.Time) { v.UpdatedAt = now }

func (v *Vehicle) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return v.ID, true
	case FieldDriverID:
		return v.DriverID, true
	case FieldPlate:
		return v.Plate, true
	case FieldType:
		return v.Type.String(), true
	default:
		return nil, false
	}
}

type VehicleUpdate struct {
	DriverID *string      `json:"driverId,omitempty"`
	Brand    *string      `json:"brand,omitempty"`
	Model    *string      `json:"model,omitempty"`
	Year     *int         `json:"year,omitempty"`
	Color    *string      `json:"color,omitempty"`
	Plate    *string      `json:"plate,omitempty"`
	Type     *VehicleType `json:"type,omitempty"`
}

func (p VehicleUpdate) Apply(v *Vehicle) {
	if p.DriverID != nil {
		v.DriverID = *p.DriverID
	}
	if p.Brand != nil {
		v.Brand = *p.Brand
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
	if p.Plate != nil {
		v.Plate = *p.Plate
	}
	if p.Type != nil {
		v.Type = *p.Type
	}
}
