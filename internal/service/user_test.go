package service

import (
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/models"
)

var testDefaults = config.DefaultsConfig{
	Categories: []string{"Income", "Groceries", "Other"},
	Vendors:    []string{"N/A", "Employer"},
}

func register(t *testing.T, svc *UserService, email string) *models.User {
	t.Helper()
	user, err := svc.Register(Registration{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "correct-horse-9",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterSeedsDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)

	user := register(t, svc, "ada@test.local")

	var cats []models.Category
	if err := db.Where("user_id = ?", user.ID).Find(&cats).Error; err != nil {
		t.Fatalf("load categories: %v", err)
	}
	if len(cats) != len(testDefaults.Categories) {
		t.Errorf("seeded %d categories, want %d", len(cats), len(testDefaults.Categories))
	}
	for _, c := range cats {
		if !c.IsDefault {
			t.Errorf("seeded category %q not flagged default", c.Name)
		}
	}

	var vends []models.Vendor
	if err := db.Where("user_id = ?", user.ID).Find(&vends).Error; err != nil {
		t.Fatalf("load vendors: %v", err)
	}
	if len(vends) != len(testDefaults.Vendors) {
		t.Errorf("seeded %d vendors, want %d", len(vends), len(testDefaults.Vendors))
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)

	if _, err := svc.Register(Registration{Email: "", Password: "x12345678"}); !IsValidation(err) {
		t.Errorf("empty email: got %v, want validation error", err)
	}
	if _, err := svc.Register(Registration{Email: "not-an-email", Password: "x12345678"}); !IsValidation(err) {
		t.Errorf("malformed email: got %v, want validation error", err)
	}
	if _, err := svc.Register(Registration{Email: "ok@test.local", Password: ""}); !IsValidation(err) {
		t.Errorf("empty password: got %v, want validation error", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)

	register(t, svc, "a@b.com")

	if _, err := svc.Register(Registration{
		FirstName: "Eve", LastName: "Dup", Email: "a@b.com", Password: "pw-irrelevant1",
	}); !IsValidation(err) {
		t.Errorf("duplicate email: got %v, want validation error", err)
	}
	// any case counts as the same email
	if _, err := svc.Register(Registration{
		FirstName: "Eve", LastName: "Dup", Email: "A@B.COM", Password: "pw-irrelevant1",
	}); !IsValidation(err) {
		t.Errorf("case-variant duplicate email: got %v, want validation error", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	user := register(t, svc, "auth@test.local")

	// correct credentials always return the same user
	for i := 0; i < 3; i++ {
		got, err := svc.Authenticate("auth@test.local", "correct-horse-9")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Fatalf("authenticate returned %+v, want user %d", got, user.ID)
		}
	}

	// email lookup ignores case
	got, err := svc.Authenticate("AUTH@TEST.LOCAL", "correct-horse-9")
	if err != nil || got == nil {
		t.Errorf("case-variant email: got (%+v, %v), want match", got, err)
	}

	// wrong password is a no-match, not an error
	got, err = svc.Authenticate("auth@test.local", "wrong")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got != nil {
		t.Error("wrong password should not match")
	}

	// unknown email is a no-match, not an error
	got, err = svc.Authenticate("nobody@test.local", "correct-horse-9")
	if err != nil || got != nil {
		t.Errorf("unknown email: got (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestAuthenticateSkipsDeletedUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	user := register(t, svc, "gone@test.local")

	if err := svc.Remove(user.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, err := svc.Authenticate("gone@test.local", "correct-horse-9")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got != nil {
		t.Error("soft-deleted user should not authenticate")
	}
}

func TestModifySparseUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	user := register(t, svc, "sparse@test.local")

	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Modify(user.ID, UserUpdate{FirstName: "Grace", DateOfBirth: &dob})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if updated.FirstName != "Grace" {
		t.Errorf("first name = %q, want Grace", updated.FirstName)
	}
	// untouched fields keep their values
	if updated.LastName != "Lovelace" || updated.Email != "sparse@test.local" {
		t.Errorf("sparse update overwrote untouched fields: %+v", updated)
	}
	if !updated.DateOfBirth.Equal(dob) {
		t.Errorf("dob = %v, want %v", updated.DateOfBirth, dob)
	}

	// password untouched: old one still works
	if got, _ := svc.Authenticate("sparse@test.local", "correct-horse-9"); got == nil {
		t.Error("password should survive a sparse update")
	}
}

func TestModifyEmailCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	register(t, svc, "taken@test.local")
	user := register(t, svc, "mine@test.local")

	if _, err := svc.Modify(user.ID, UserUpdate{Email: "TAKEN@test.local"}); !IsValidation(err) {
		t.Errorf("email collision: got %v, want validation error", err)
	}
	// keeping one's own email is not a collision
	if _, err := svc.Modify(user.ID, UserUpdate{Email: "mine@test.local"}); err != nil {
		t.Errorf("own email should be allowed, got %v", err)
	}
	if _, err := svc.Modify(9999, UserUpdate{FirstName: "X"}); !IsNotFound(err) {
		t.Errorf("unknown user: got %v, want not-found error", err)
	}
}

func TestModifyRotatesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	user := register(t, svc, "rotate@test.local")

	if _, err := svc.Modify(user.ID, UserUpdate{Password: "new-password-77"}); err != nil {
		t.Fatalf("modify: %v", err)
	}

	if got, _ := svc.Authenticate("rotate@test.local", "correct-horse-9"); got != nil {
		t.Error("old password should no longer match")
	}
	if got, _ := svc.Authenticate("rotate@test.local", "new-password-77"); got == nil {
		t.Error("new password should match")
	}
}

func TestRemoveSoftDeletesAndModifyReactivates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testDefaults)
	user := register(t, svc, "soft@test.local")

	if err := svc.Remove(user.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// the row is still there, only flagged
	var raw models.User
	if err := db.First(&raw, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !raw.IsDeleted {
		t.Error("remove should set IsDeleted")
	}

	// modify reactivates
	if _, err := svc.Modify(user.ID, UserUpdate{FirstName: "Back"}); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if err := db.First(&raw, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if raw.IsDeleted {
		t.Error("modify should clear IsDeleted")
	}
}
