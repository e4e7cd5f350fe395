package helpers

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

const couponCodeLength = 8

var codeCounter uint64

// GenerateCouponCode returns an 8 character lowercase hex coupon code:
// the truncated md5 digest of a random seed, the current nanotime and a
// per-process counter. Uniqueness is probabilistic; the codes column is
// unique and the caller retries on a collision.
func GenerateCouponCode() string {
	var seed [8]byte
	_, _ = rand.Read(seed[:])
	n := atomic.AddUint64(&codeCounter, 1)
	sum := md5.Sum([]byte(fmt.Sprintf("%x%d%d", seed, time.Now().UnixNano(), n)))
	return hex.EncodeToString(sum[:])[:couponCodeLength]
}
