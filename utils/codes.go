package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken สร้าง token แบบ hex (length = bytes)
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateBookingNumber builds a human-readable reference like
// "BK-20260901-A4F9C2". The suffix is random, so callers retry on a
// unique-index collision.
func GenerateBookingNumber() (string, error) {
	suffix, err := GenerateSecureToken(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}

// PtrTime returns pointer to time.Time
func PtrTime(t time.Time) *time.Time { return &t }
