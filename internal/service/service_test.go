package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetbook/internal/database"
	"budgetbook/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// one connection keeps the shared in-memory db alive for the test
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "salt$hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func newTestRefs(t *testing.T, db *gorm.DB, userID uint) (account models.Account, category models.Category, vendor models.Vendor) {
	t.Helper()
	account = models.Account{UserID: userID, Name: "Checking", IsAsset: true, IsActive: true}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create test account: %v", err)
	}
	category = models.Category{UserID: userID, Name: "Groceries", IsDisplayed: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create test category: %v", err)
	}
	vendor = models.Vendor{UserID: userID, Name: "Market", IsDisplayed: true}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("create test vendor: %v", err)
	}
	return account, category, vendor
}

func newTestTransaction(t *testing.T, db *gorm.DB, userID uint, accountID, categoryID, vendorID uint, isDebit bool, amount string) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		UserID:     userID,
		Date:       time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		AccountID:  accountID,
		CategoryID: categoryID,
		VendorID:   vendorID,
		IsDebit:    isDebit,
		Amount:     decimal.RequireFromString(amount),
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("create test transaction: %v", err)
	}
	return tx
}
