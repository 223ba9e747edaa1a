package model

// UserModel mirrors the 'users' table.
type UserModel struct {
	Base
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	Name     string `gorm:"type:varchar(100)"`
	Phone    string `gorm:"type:varchar(32)"`
	Role     string `gorm:"type:varchar(16);index;not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
