// Package model contains the GORM persistence models. They mirror the
// database schema and are mapped to/from the pure domain entities at the
// repository boundary.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The OTP columns are nullable: both are
// set together when a reset is requested and cleared together when the code
// is consumed.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string     `gorm:"type:varchar(255);unique;not null"`
	Name         string     `gorm:"type:varchar(255);not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	OTPCode      *string    `gorm:"column:otp_code;type:varchar(6)"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
