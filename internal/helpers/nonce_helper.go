package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Form nonces are scoped to an action plus the submitting user and roll
// over every half lifetime. Verification accepts the current and the
// previous window, so a rendered form stays valid for at least 12 hours.
const nonceLifetime = 24 * time.Hour

const nonceLength = 10

func nonceSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func nonceTick(now time.Time) int64 {
	return now.Unix() / int64(nonceLifetime.Seconds()/2)
}

func nonceAt(action string, userID uuid.UUID, tick int64) string {
	mac := hmac.New(sha256.New, nonceSecret())
	fmt.Fprintf(mac, "%s|%s|%d", action, userID, tick)
	return hex.EncodeToString(mac.Sum(nil))[:nonceLength]
}

// NewNonce returns a token tied to the action, the user and the current
// time window.
func NewNonce(action string, userID uuid.UUID) string {
	return nonceAt(action, userID, nonceTick(time.Now()))
}

// VerifyNonce reports whether token was issued by NewNonce for the same
// action and user within the nonce lifetime.
func VerifyNonce(token, action string, userID uuid.UUID) bool {
	if token == "" {
		return false
	}
	tick := nonceTick(time.Now())
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(token), []byte(nonceAt(action, userID, t))) {
			return true
		}
	}
	return false
}
