package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewReferenceNumber returns a human-readable deal reference like
// DL-2026-04217. The 1..99999 space is small on purpose; uniqueness is the
// caller's job (regenerate and recheck on collision).
func NewReferenceNumber() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	seq := binary.BigEndian.Uint64(b[:])%99999 + 1
	return fmt.Sprintf("DL-%d-%05d", time.Now().UTC().Year(), seq)
}
