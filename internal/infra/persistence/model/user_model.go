package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The primary key is the nanoid-based
// public identifier generated by the application, not the database.
type UserModel struct {
	ID            string `gorm:"type:varchar(16);primary_key"`
	Email         string `gorm:"type:varchar(255);unique;not null"`
	FirstName     string `gorm:"type:varchar(100)"`
	LastName      string `gorm:"type:varchar(100)"`
	PasswordHash  string `gorm:"type:varchar(64);not null"`
	EmailVerified bool   `gorm:"not null;default:false"`
	IsSuspended   bool   `gorm:"not null;default:false"`
	IsDeleted     bool   `gorm:"not null;default:false"`
	Role          string `gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
