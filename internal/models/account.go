package models

import "time"

// Account is a financial account owned by one user. Its balance is
// never stored; it is derived from the transaction history on read.
type Account struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null;uniqueIndex:uniq_account_user_name"`
	Name      string `gorm:"size:64;not null;uniqueIndex:uniq_account_user_name"`
	IsAsset   bool   `gorm:"not null"` // asset vs liability, decides balance sign
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
