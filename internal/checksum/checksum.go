// Package checksum fingerprints note log content so unchanged logs can skip reindexing.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

const prefix = "sha256:"

// Sum returns the algorithm-prefixed, hex-encoded SHA-256 digest of data.
// Missing content (nil) and an empty file share the same digest.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return prefix + hex.EncodeToString(h[:])
}

// Matches reports whether sum is the digest of data.
func Matches(data []byte, sum string) bool {
	return sum != "" && Sum(data) == sum
}
