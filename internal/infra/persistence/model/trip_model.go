package model

import "time"

// TripModel mirrors the 'trips' table. Coordinates are flattened into
// nullable columns.
type TripModel struct {
	Base
	UserID        string `gorm:"type:varchar(64);index;not null"`
	DriverID      string `gorm:"type:varchar(64);index"`
	From          string `gorm:"column:from_address;type:varchar(255)"`
	To            string `gorm:"column:to_address;type:varchar(255)"`
	FromLat       *float64
	FromLng       *float64
	ToLat         *float64
	ToLng         *float64
	DistanceKm    float64
	DurationMin   int
	Status        string  `gorm:"type:varchar(16);index;not null"`
	Price         float64 `gorm:"not null;default:0"`
	City          string  `gorm:"type:varchar(100);index"`
	VehicleType   string  `gorm:"type:varchar(16)"`
	PaymentMethod string  `gorm:"type:varchar(16)"`
	ScheduledAt   *time.Time
	CompletedAt   *time.Time
}

// TableName explicitly sets the table name for GORM.
func (TripModel) TableName() string {
	return "trips"
}
