package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GenerateState builds an OAuth state value "<unix>.<nonce>.<mac>" signed with secret.
func GenerateState(secret string, now time.Time) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	payload := strconv.FormatInt(now.Unix(), 10) + "." + hex.EncodeToString(nonce)
	return payload + "." + GenerateHMAC(payload, secret), nil
}

// VerifyState checks the signature of state and that it is younger than maxAge.
func VerifyState(secret, state string, now time.Time, maxAge time.Duration) error {
	parts := strings.Split(state, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed state")
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(GenerateHMAC(payload, secret)), []byte(parts[2])) {
		return fmt.Errorf("state signature mismatch")
	}
	issued, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid state timestamp: %w", err)
	}
	age := now.Sub(time.Unix(issued, 0))
	if age < 0 || age > maxAge {
		return fmt.Errorf("state expired")
	}
	return nil
}

// GenerateHMAC returns the hex HMAC-SHA256 of data under secret
func GenerateHMAC(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
