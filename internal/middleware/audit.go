package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"budgetbook/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var sensitiveBodyKeys = []string{"password", "old_password", "new_password"}

// redactBody blanks credential fields so they never reach the audit
// table in clear. Bodies that are not JSON objects pass through as-is.
func redactBody(body []byte) string {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}

	changed := false
	for _, key := range sensitiveBodyKeys {
		if _, ok := fields[key]; ok {
			fields[key] = "[REDACTED]"
			changed = true
		}
	}
	if !changed {
		return string(body)
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(out)
}

// AuditMiddleware records one row per authenticated request. Failures
// to write the audit row never fail the request itself.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		if userID == 0 {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + redactBody(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
