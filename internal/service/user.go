package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/models"
	"budgetbook/internal/util"

	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService implements registration, authentication and the user
// lifecycle. The default category/vendor name sets are injected at
// construction instead of living in package state.
type UserService struct {
	db       *gorm.DB
	defaults config.DefaultsConfig
}

func NewUserService(db *gorm.DB, defaults config.DefaultsConfig) *UserService {
	return &UserService{db: db, defaults: defaults}
}

// Registration carries the fields of a new user.
type Registration struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	Password    string
}

// Register creates the user and seeds their default categories and
// vendors in one database transaction. The email must not already be
// registered, ignoring case.
func (s *UserService) Register(reg Registration) (*models.User, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Email == "" || !emailRe.MatchString(reg.Email) {
		return nil, Validationf("a valid email is required")
	}
	if reg.Password == "" {
		return nil, Validationf("password is required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", reg.Email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Validationf("email already registered")
	}

	hash, err := util.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        reg.Email,
		DateOfBirth:  reg.DateOfBirth,
		PasswordHash: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return s.seedDefaults(tx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate looks up a non-deleted user by email (case-insensitive)
// and verifies the password. No match is not an error: it returns
// (nil, nil) so the caller cannot tell a wrong password from an
// unknown email.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil
	}

	var user models.User
	err := s.db.Where("LOWER(email) = LOWER(?) AND is_deleted = ?", email, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return &user, nil
}

// Get loads a user by id, deleted or not.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserUpdate is a sparse update: blank strings and nil fields keep the
// stored value.
type UserUpdate struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth *time.Time
	Password    string
}

// Modify applies the provided fields to an existing user. A new email
// must not collide with a different user's email, ignoring case.
// Modifying a soft-deleted user reactivates the account.
func (s *UserService) Modify(id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(upd.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(upd.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(upd.Email); v != "" {
		if !emailRe.MatchString(v) {
			return nil, Validationf("a valid email is required")
		}
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?) AND id <> ?", v, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, Validationf("email already registered")
		}
		user.Email = v
	}
	if upd.DateOfBirth != nil && !upd.DateOfBirth.IsZero() {
		user.DateOfBirth = *upd.DateOfBirth
	}
	if upd.Password != "" {
		hash, err := util.HashPassword(upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.IsDeleted = false

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Remove soft-deletes the user. The row and all owned data stay.
func (s *UserService) Remove(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("is_deleted", true).Error
}

func (s *UserService) seedDefaults(tx *gorm.DB, userID uint) error {
	for _, name := range s.defaults.Categories {
		c := models.Category{UserID: userID, Name: name, IsDefault: true, IsDisplayed: true}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
	}
	for _, name := range s.defaults.Vendors {
		v := models.Vendor{UserID: userID, Name: name, IsDefault: true, IsDisplayed: true}
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
	}
	return nil
}
