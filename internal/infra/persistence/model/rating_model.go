package model

// RatingModel mirrors the 'ratings' table.
type RatingModel struct {
	Base
	TripID   string  `gorm:"type:varchar(64);index"`
	UserID   string  `gorm:"type:varchar(64);index"`
	DriverID string  `gorm:"type:varchar(64);index"`
	Score    float64 `gorm:"not null;check:score >= 0 AND score <= 5"`
	Comment  string  `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
