package models

import "time"

// Vendor is a counterparty on a transaction. Like categories, a
// default set is seeded per user and defaults are immutable.
type Vendor struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null;uniqueIndex:uniq_vendor_user_name"`
	Name        string `gorm:"size:64;not null;uniqueIndex:uniq_vendor_user_name"`
	IsDefault   bool   `gorm:"not null;default:false"`
	IsDisplayed bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
