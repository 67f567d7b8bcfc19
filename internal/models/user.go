package models

import "time"

// User represents an application user. Users are soft-deleted: removal
// sets IsDeleted and the row stays, so owned data keeps a valid parent.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:64;not null"`
	LastName     string `gorm:"size:64;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	DateOfBirth  time.Time
	PasswordHash string `gorm:"size:255;not null"` // "salt$hash", both base64
	IsDeleted    bool   `gorm:"index;not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
