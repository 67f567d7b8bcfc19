package service

import (
	"errors"

	"budgetbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountService implements account business rules. Balances are never
// stored; every read derives them from the transaction history.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// AccountWithBalance pairs an account row with its derived balance.
type AccountWithBalance struct {
	Account models.Account
	Balance decimal.Decimal
}

// List returns the user's accounts, each with a freshly derived balance.
func (s *AccountService) List(userID uint) ([]AccountWithBalance, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}

	out := make([]AccountWithBalance, 0, len(accounts))
	for i := range accounts {
		balance, err := s.balanceOf(&accounts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, AccountWithBalance{Account: accounts[i], Balance: balance})
	}
	return out, nil
}

// Get loads one owned account with its balance.
func (s *AccountService) Get(userID, id uint) (*AccountWithBalance, error) {
	account, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.balanceOf(account)
	if err != nil {
		return nil, err
	}
	return &AccountWithBalance{Account: *account, Balance: balance}, nil
}

// Add creates an account. The name must be non-blank and unique among
// the user's accounts, ignoring case.
func (s *AccountService) Add(userID uint, name string, isAsset, isActive bool) (*models.Account, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	taken, err := nameTaken(s.db, &models.Account{}, userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Validationf("an account named %q already exists", name)
	}

	account := models.Account{
		UserID:   userID,
		Name:     name,
		IsAsset:  isAsset,
		IsActive: isActive,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Modify updates an owned account, re-checking name uniqueness against
// every other account of the user.
func (s *AccountService) Modify(userID, id uint, name string, isAsset, isActive bool) (*models.Account, error) {
	account, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	name, err = validName(name)
	if err != nil {
		return nil, err
	}
	taken, err := nameTaken(s.db, &models.Account{}, userID, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Validationf("an account named %q already exists", name)
	}

	updates := map[string]interface{}{
		"name":      name,
		"is_asset":  isAsset,
		"is_active": isActive,
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.find(userID, id)
}

// Delete removes an owned account. An account still referenced by
// transactions cannot be deleted; there is no absorption for accounts.
func (s *AccountService) Delete(userID, id uint) error {
	account, err := s.find(userID, id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Transaction{}).
		Where("account_id = ? AND user_id = ?", id, userID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return Validationf("account %q still has transactions", account.Name)
	}
	return s.db.Delete(account).Error
}

func (s *AccountService) find(userID, id uint) (*models.Account, error) {
	var account models.Account
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("account not found")
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) balanceOf(account *models.Account) (decimal.Decimal, error) {
	var txs []models.Transaction
	if err := s.db.Where("account_id = ? AND user_id = ?", account.ID, account.UserID).
		Find(&txs).Error; err != nil {
		return decimal.Zero, err
	}
	return AccountBalance(account.IsAsset, txs), nil
}
