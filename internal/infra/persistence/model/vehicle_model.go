package model

// VehicleModel mirrors the 'vehicles' table.
type VehicleModel struct {
	Base
	DriverID    string `gorm:"type:varchar(64);index"`
	Brand       string `gorm:"type:varchar(64)"`
	Model       string `gorm:"type:varchar(64)"`
	Year        int
	Color       string `gorm:"type:varchar(32)"`
	Plate       string `gorm:"type:varchar(32);index"`
	VehicleType string `gorm:"type:varchar(16)"`
}

// TableName explicitly sets the table name for GORM.
func (VehicleModel) TableName() string {
	return "vehicles"
}
