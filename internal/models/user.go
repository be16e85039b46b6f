package models

import "time"

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"uniqueIndex;not null" json:"name"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	IsActive         bool      `gorm:"not null;default:false" json:"is_active"`
	VerificationCode string    `json:"-"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}
