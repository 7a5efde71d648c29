// Package daily derives a deterministic secret for each calendar day.
//
// Every player asking on the same UTC date with the same salt gets the same word,
// without any stored state.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Source is an ordered word list to pick from. *words.Dictionary satisfies it.
type Source interface {
	Len() int
	At(i int) string
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Secret returns the word of the day for date.
func Secret(src Source, date time.Time, salt string) string {
	return src.At(WordIndex(date, salt, src.Len()))
}
