// Package model holds the GORM table mappings of the Postgres record store.
package model

import "time"

// Base carries the columns every record table shares. Seq is filled by the
// database and orders rows by insertion.
type Base struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Seq       int64     `gorm:"type:bigserial;->"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&DriverModel{},
		&VehicleModel{},
		&TripModel{},
		&RatingModel{},
		&PaymentModel{},
	}
}
