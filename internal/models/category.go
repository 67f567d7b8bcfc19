package models

import "time"

// Category groups transactions by purpose. A fixed default set is
// seeded for every new user; defaults cannot be renamed or deleted.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null;uniqueIndex:uniq_category_user_name"`
	Name        string `gorm:"size:64;not null;uniqueIndex:uniq_category_user_name"`
	IsDefault   bool   `gorm:"not null;default:false"`
	IsDisplayed bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
