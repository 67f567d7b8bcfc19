package service

import (
	"errors"
	"time"

	"budgetbook/internal/models"

	"gorm.io/gorm"
)

// TransactionService implements transaction business rules.
type TransactionService struct {
	db *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// TransactionFilter narrows and orders a transaction listing.
type TransactionFilter struct {
	Start      time.Time
	End        time.Time
	HasStart   bool
	HasEnd     bool
	AccountID  uint
	CategoryID uint
	VendorID   uint
	Sort       string // date_desc (default), date_asc, amount_desc, amount_asc
	Page       int
	PageSize   int
}

// List returns one page of the user's transactions plus the total
// match count under the same filter.
func (s *TransactionService) List(userID uint, f TransactionFilter) ([]models.Transaction, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if f.HasStart {
		base = base.Where("date >= ?", f.Start)
	}
	if f.HasEnd {
		base = base.Where("date < ?", f.End)
	}
	if f.AccountID != 0 {
		base = base.Where("account_id = ?", f.AccountID)
	}
	if f.CategoryID != 0 {
		base = base.Where("category_id = ?", f.CategoryID)
	}
	if f.VendorID != 0 {
		base = base.Where("vendor_id = ?", f.VendorID)
	}

	orderBy := "date DESC, id DESC"
	switch f.Sort {
	case "date_asc":
		orderBy = "date ASC, id ASC"
	case "amount_desc":
		orderBy = "amount DESC, id DESC"
	case "amount_asc":
		orderBy = "amount ASC, id ASC"
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// ListRange returns every transaction of the user inside [start, end).
func (s *TransactionService) ListRange(userID uint, start, end time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// ListAll returns the user's full history, newest first.
func (s *TransactionService) ListAll(userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Add validates and persists a new transaction for the user.
func (s *TransactionService) Add(userID uint, tx *models.Transaction) error {
	tx.UserID = userID
	if err := s.validate(userID, tx); err != nil {
		return err
	}
	return s.db.Create(tx).Error
}

// Modify overwrites an owned transaction after re-validation.
func (s *TransactionService) Modify(userID uint, tx *models.Transaction) error {
	existing, err := s.find(userID, tx.ID)
	if err != nil {
		return err
	}
	tx.UserID = userID
	if err := s.validate(userID, tx); err != nil {
		return err
	}

	updates := map[string]interface{}{
		"date":        tx.Date,
		"account_id":  tx.AccountID,
		"category_id": tx.CategoryID,
		"vendor_id":   tx.VendorID,
		"is_debit":    tx.IsDebit,
		"amount":      tx.Amount,
		"description": tx.Description,
	}
	return s.db.Model(existing).Updates(updates).Error
}

// Get loads one owned transaction.
func (s *TransactionService) Get(userID, id uint) (*models.Transaction, error) {
	return s.find(userID, id)
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(userID, id uint) error {
	tx, err := s.find(userID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(tx).Error
}

func (s *TransactionService) find(userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// validate checks the amount range, the date, and that every referenced
// entity exists and belongs to the same user. A reference to another
// user's row is reported exactly like a missing one.
func (s *TransactionService) validate(userID uint, tx *models.Transaction) error {
	if tx.Amount.IsNegative() {
		return Validationf("amount must not be negative")
	}
	if tx.Amount.GreaterThan(MaxAmount) {
		return Validationf("amount exceeds the allowed maximum")
	}
	if tx.Date.IsZero() {
		return Validationf("date is required")
	}

	if err := s.refOwned(&models.Account{}, userID, tx.AccountID, "account"); err != nil {
		return err
	}
	if err := s.refOwned(&models.Category{}, userID, tx.CategoryID, "category"); err != nil {
		return err
	}
	return s.refOwned(&models.Vendor{}, userID, tx.VendorID, "vendor")
}

func (s *TransactionService) refOwned(model interface{}, userID, id uint, label string) error {
	if id == 0 {
		return Validationf("%s is required", label)
	}
	var count int64
	if err := s.db.Model(model).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return Validationf("%s not found", label)
	}
	return nil
}
