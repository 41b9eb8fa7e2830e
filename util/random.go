package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandString returns n bytes of randomness hex-encoded (2n characters).
func RandString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
