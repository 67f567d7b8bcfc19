package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger line. Amount is always non-negative;
// direction comes from IsDebit relative to the account.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Date        time.Time       `gorm:"index;not null"`
	AccountID   uint            `gorm:"index;not null"`
	CategoryID  uint            `gorm:"index;not null"`
	VendorID    uint            `gorm:"index;not null"`
	IsDebit     bool            `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Account  Account  `gorm:"constraint:OnDelete:RESTRICT"`
	Category Category `gorm:"constraint:OnDelete:RESTRICT"`
	Vendor   Vendor   `gorm:"constraint:OnDelete:RESTRICT"`
}
