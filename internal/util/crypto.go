package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const saltLen = 16

// HashPassword keys HMAC-SHA256 with a fresh random salt and returns a
// "salt$hash" string, both halves base64.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(password))
	hash := mac.Sum(nil)

	saltStr := base64.RawStdEncoding.EncodeToString(salt)
	hashStr := base64.RawStdEncoding.EncodeToString(hash)

	return saltStr + "$" + hashStr, nil
}

// CheckPassword recomputes the HMAC with the stored salt and compares
// in constant time.
func CheckPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}

	var saltStr, hashStr string
	for i := 0; i < len(stored); i++ {
		if stored[i] == '$' {
			saltStr, hashStr = stored[:i], stored[i+1:]
			break
		}
	}
	if saltStr == "" || hashStr == "" {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltStr)
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(hashStr)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), expected)
}
