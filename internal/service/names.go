package service

import (
	"strings"

	"gorm.io/gorm"
)

// validName trims the candidate and rejects blank names.
func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", Validationf("name must not be empty")
	}
	return name, nil
}

// nameTaken reports whether another entity of the same type owned by
// the same user already carries this name, ignoring case. excludeID
// keeps an entity from colliding with itself on modify (0 on create).
func nameTaken(db *gorm.DB, model interface{}, userID uint, name string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(model).
		Where("user_id = ? AND LOWER(name) = LOWER(?) AND id <> ?", userID, name, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
