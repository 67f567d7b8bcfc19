package service

import (
	"testing"
	"time"

	"budgetbook/internal/models"

	"github.com/shopspring/decimal"
)

func testTx(account models.Account, category models.Category, vendor models.Vendor, amount string) *models.Transaction {
	return &models.Transaction{
		Date:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		AccountID:  account.ID,
		CategoryID: category.ID,
		VendorID:   vendor.ID,
		IsDebit:    true,
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestTransactionAdd(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "tx@test.local")
	account, category, vendor := newTestRefs(t, db, user.ID)
	svc := NewTransactionService(db)

	tx := testTx(account, category, vendor, "12.34")
	if err := svc.Add(user.ID, tx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if tx.ID == 0 {
		t.Error("add should assign an id")
	}

	loaded, err := svc.Get(user.ID, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !loaded.Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Errorf("amount = %s, want 12.34", loaded.Amount)
	}
}

func TestTransactionAmountBounds(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "bounds@test.local")
	account, category, vendor := newTestRefs(t, db, user.ID)
	svc := NewTransactionService(db)

	tx := testTx(account, category, vendor, "-0.01")
	if err := svc.Add(user.ID, tx); !IsValidation(err) {
		t.Errorf("negative amount: got %v, want validation error", err)
	}

	tx = testTx(account, category, vendor, "10000000000000000.00")
	if err := svc.Add(user.ID, tx); !IsValidation(err) {
		t.Errorf("amount over maximum: got %v, want validation error", err)
	}

	// zero and the maximum itself are allowed
	tx = testTx(account, category, vendor, "0")
	if err := svc.Add(user.ID, tx); err != nil {
		t.Errorf("zero amount: %v", err)
	}
	tx = testTx(account, category, vendor, "9999999999999999.99")
	if err := svc.Add(user.ID, tx); err != nil {
		t.Errorf("maximum amount: %v", err)
	}
}

func TestTransactionRejectsForeignReferences(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ref@test.local")
	stranger := newTestUser(t, db, "ref2@test.local")
	account, category, vendor := newTestRefs(t, db, user.ID)
	foreignAccount, foreignCategory, foreignVendor := newTestRefs(t, db, stranger.ID)
	svc := NewTransactionService(db)

	tx := testTx(foreignAccount, category, vendor, "1.00")
	if err := svc.Add(user.ID, tx); !IsValidation(err) {
		t.Errorf("foreign account: got %v, want validation error", err)
	}
	tx = testTx(account, foreignCategory, vendor, "1.00")
	if err := svc.Add(user.ID, tx); !IsValidation(err) {
		t.Errorf("foreign category: got %v, want validation error", err)
	}
	tx = testTx(account, category, foreignVendor, "1.00")
	if err := svc.Add(user.ID, tx); !IsValidation(err) {
		t.Errorf("foreign vendor: got %v, want validation error", err)
	}
}

func TestTransactionModifyAndDelete(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "mod@test.local")
	account, category, vendor := newTestRefs(t, db, user.ID)
	svc := NewTransactionService(db)

	tx := testTx(account, category, vendor, "5.00")
	if err := svc.Add(user.ID, tx); err != nil {
		t.Fatalf("add: %v", err)
	}

	tx.Amount = decimal.RequireFromString("7.50")
	tx.Description = "updated"
	if err := svc.Modify(user.ID, tx); err != nil {
		t.Fatalf("modify: %v", err)
	}

	loaded, err := svc.Get(user.ID, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !loaded.Amount.Equal(decimal.RequireFromString("7.50")) || loaded.Description != "updated" {
		t.Errorf("modify not applied: amount=%s description=%q", loaded.Amount, loaded.Description)
	}

	if err := svc.Delete(user.ID, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(user.ID, tx.ID); !IsNotFound(err) {
		t.Errorf("deleted transaction still loadable: %v", err)
	}
	if err := svc.Delete(user.ID, tx.ID); !IsNotFound(err) {
		t.Errorf("double delete: got %v, want not-found error", err)
	}
}

func TestTransactionListFilters(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "list@test.local")
	account, category, vendor := newTestRefs(t, db, user.ID)
	other := models.Category{UserID: user.ID, Name: "Travel", IsDisplayed: true}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	svc := NewTransactionService(db)

	newTestTransaction(t, db, user.ID, account.ID, category.ID, vendor.ID, true, "1.00")
	newTestTransaction(t, db, user.ID, account.ID, category.ID, vendor.ID, true, "2.00")
	newTestTransaction(t, db, user.ID, account.ID, other.ID, vendor.ID, true, "3.00")

	txs, total, err := svc.List(user.ID, TransactionFilter{CategoryID: category.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(txs) != 2 {
		t.Errorf("filtered list: total=%d len=%d, want 2/2", total, len(txs))
	}

	txs, total, err = svc.List(user.ID, TransactionFilter{Sort: "amount_desc", PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(txs) != 2 || !txs[0].Amount.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("sorted first page wrong: %+v", txs)
	}
}
