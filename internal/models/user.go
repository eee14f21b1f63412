package models

import "time"

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

const MaxDisplayNameLength = 64

// Profile holds the display name shown across the app.
type Profile struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	FullName  string    `gorm:"not null;default:''" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
