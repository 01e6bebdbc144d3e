// Package daily derives the shared puzzle of the day.
// Every player gets the same theme and grid for a UTC date; both are
// HMAC-SHA256(salt, YYYY-MM-DD) derived so the schedule cannot be guessed
// without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func digest(date time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return h.Sum(nil)
}

// ThemeIndex returns a deterministic index in [0, n) for the date.
func ThemeIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	// first 8 bytes for the index, next 8 for the seed
	v := binary.BigEndian.Uint64(digest(date, salt)[:8])
	return int(v % uint64(n))
}

// Seed returns a non-zero generator seed for the date.
func Seed(date time.Time, salt string) int64 {
	v := int64(binary.BigEndian.Uint64(digest(date, salt)[8:16]) >> 1)
	if v == 0 {
		return 1
	}
	return v
}
