package service

import (
	"errors"

	"budgetbook/internal/models"

	"gorm.io/gorm"
)

// CatalogModel constrains the two name-catalog entities. Categories and
// vendors share every rule (per-user case-insensitive names, seeded
// immutable defaults, removal by absorption), so one service covers
// both instead of a per-entity hierarchy.
type CatalogModel interface {
	models.Category | models.Vendor
}

// ItemView is the flattened projection of a catalog row.
type ItemView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IsDefault   bool   `json:"is_default"`
	IsDisplayed bool   `json:"is_displayed"`
}

// CatalogService implements category/vendor business rules on top of
// the relational store.
type CatalogService[T CatalogModel] struct {
	db       *gorm.DB
	label    string // entity name used in error messages
	fkColumn string // transactions column referencing this catalog
}

func NewCategoryService(db *gorm.DB) *CatalogService[models.Category] {
	return &CatalogService[models.Category]{db: db, label: "category", fkColumn: "category_id"}
}

func NewVendorService(db *gorm.DB) *CatalogService[models.Vendor] {
	return &CatalogService[models.Vendor]{db: db, label: "vendor", fkColumn: "vendor_id"}
}

func catalogView[T CatalogModel](m *T) ItemView {
	switch v := any(m).(type) {
	case *models.Category:
		return ItemView{ID: v.ID, Name: v.Name, IsDefault: v.IsDefault, IsDisplayed: v.IsDisplayed}
	case *models.Vendor:
		return ItemView{ID: v.ID, Name: v.Name, IsDefault: v.IsDefault, IsDisplayed: v.IsDisplayed}
	}
	return ItemView{}
}

func fillCatalog[T CatalogModel](m *T, userID uint, name string, isDefault, isDisplayed bool) {
	switch v := any(m).(type) {
	case *models.Category:
		v.UserID, v.Name, v.IsDefault, v.IsDisplayed = userID, name, isDefault, isDisplayed
	case *models.Vendor:
		v.UserID, v.Name, v.IsDefault, v.IsDisplayed = userID, name, isDefault, isDisplayed
	}
}

// View flattens a row for the HTTP layer.
func (s *CatalogService[T]) View(m *T) ItemView { return catalogView(m) }

// List returns the user's catalog ordered by name.
func (s *CatalogService[T]) List(userID uint) ([]T, error) {
	var items []T
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get loads one owned row.
func (s *CatalogService[T]) Get(userID, id uint) (*T, error) {
	var item T
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundf("%s not found", s.label)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add creates a user-defined (never default) catalog entry. The name
// must be non-blank and unique among the user's entries of this type,
// ignoring case.
func (s *CatalogService[T]) Add(userID uint, name string, isDisplayed bool) (*T, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	taken, err := nameTaken(s.db, new(T), userID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Validationf("a %s named %q already exists", s.label, name)
	}

	var item T
	fillCatalog(&item, userID, name, false, isDisplayed)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Modify renames or re-flags an entry. Defaults are immutable.
func (s *CatalogService[T]) Modify(userID, id uint, name string, isDisplayed bool) (*T, error) {
	item, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if catalogView(item).IsDefault {
		return nil, Validationf("default %s entries cannot be modified", s.label)
	}

	name, err = validName(name)
	if err != nil {
		return nil, err
	}
	taken, err := nameTaken(s.db, new(T), userID, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Validationf("a %s named %q already exists", s.label, name)
	}

	updates := map[string]interface{}{"name": name, "is_displayed": isDisplayed}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Absorb re-points every transaction referencing the absorbed entry to
// the absorbing one, then deletes the absorbed row. Both steps run in
// one database transaction, so a failure leaves no partial state.
// Preconditions are checked in order, each its own failure: the
// absorbed entry must exist and be owned by the user, must not be a
// default, must not be the absorbing entry, and the absorbing entry
// must exist and be owned by the user.
func (s *CatalogService[T]) Absorb(userID, absorbedID, absorbingID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var absorbed T
		err := tx.Where("id = ? AND user_id = ?", absorbedID, userID).First(&absorbed).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundf("%s not found", s.label)
		}
		if err != nil {
			return err
		}
		if catalogView(&absorbed).IsDefault {
			return Validationf("default %s entries cannot be deleted", s.label)
		}
		if absorbedID == absorbingID {
			return Validationf("a %s cannot absorb itself", s.label)
		}

		var absorbing T
		err = tx.Where("id = ? AND user_id = ?", absorbingID, userID).First(&absorbing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundf("absorbing %s not found", s.label)
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Transaction{}).
			Where(s.fkColumn+" = ? AND user_id = ?", absorbedID, userID).
			Update(s.fkColumn, absorbingID).Error; err != nil {
			return err
		}
		return tx.Delete(&absorbed).Error
	})
}
