package model

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	Base
	TripID        string  `gorm:"type:varchar(64);index"`
	UserID        string  `gorm:"type:varchar(64);index"`
	Amount        float64 `gorm:"not null"`
	Method        string  `gorm:"type:varchar(16)"`
	Status        string  `gorm:"type:varchar(16);index"`
	TransactionID string  `gorm:"type:varchar(64);uniqueIndex"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
