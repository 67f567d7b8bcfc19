package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"budgetbook/internal/database"
	"budgetbook/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:mw_test_%d?mode=memory&cache=shared", n)
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// auditTestRouter wires the audit middleware behind a stub that plays
// the role of the auth middleware.
func auditTestRouter(t *testing.T, db *gorm.DB, seen *string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	user := models.User{FirstName: "A", LastName: "B", Email: "audit@test.local", PasswordHash: "s$h"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("currentUser", &user) }, AuditMiddleware(db))
	r.PUT("/api/user", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		*seen = string(body)
		c.Status(http.StatusOK)
	})
	return r
}

func lastAuditRow(t *testing.T, db *gorm.DB) models.AuditLog {
	t.Helper()
	var row models.AuditLog
	if err := db.Order("id DESC").First(&row).Error; err != nil {
		t.Fatalf("load audit row: %v", err)
	}
	return row
}

func TestAuditMiddlewareRedactsCredentials(t *testing.T) {
	db := newTestDB(t)
	var seen string
	r := auditTestRouter(t, db, &seen)

	body := `{"first_name":"Grace","password":"super-secret-pw-99"}`
	req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	row := lastAuditRow(t, db)
	if strings.Contains(row.Action, "super-secret-pw-99") {
		t.Errorf("audit row stores the plaintext password: %q", row.Action)
	}
	if !strings.Contains(row.Action, "[REDACTED]") {
		t.Errorf("audit row should mark the redacted field: %q", row.Action)
	}
	// non-secret fields stay readable
	if !strings.Contains(row.Action, "Grace") {
		t.Errorf("audit row lost non-secret fields: %q", row.Action)
	}
	// the handler still receives the original body
	if seen != body {
		t.Errorf("handler saw %q, want the original body", seen)
	}
}

func TestAuditMiddlewareKeepsPlainBodies(t *testing.T) {
	db := newTestDB(t)
	var seen string
	r := auditTestRouter(t, db, &seen)

	body := `{"first_name":"NoSecrets"}`
	req := httptest.NewRequest(http.MethodPut, "/api/user", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	row := lastAuditRow(t, db)
	if !strings.Contains(row.Action, body) {
		t.Errorf("audit row should keep a body without credentials: %q", row.Action)
	}
}
