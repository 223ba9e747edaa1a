package model

// DriverModel mirrors the 'drivers' table.
type DriverModel struct {
	Base
	UserID      string  `gorm:"type:varchar(64);index"`
	Name        string  `gorm:"type:varchar(100)"`
	Phone       string  `gorm:"type:varchar(32)"`
	Rating      float64 `gorm:"not null;default:0"`
	TotalTrips  int     `gorm:"not null;default:0"`
	VehicleID   string  `gorm:"type:varchar(64)"`
	IsAvailable bool    `gorm:"index"`
	City        string  `gorm:"type:varchar(100);index"`
}

// TableName explicitly sets the table name for GORM.
func (DriverModel) TableName() string {
	return "drivers"
}
