package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"runtime"
)

// sha256HexLen is the length of a hex-encoded SHA-256 digest.
const sha256HexLen = sha256.Size * 2

// SHA256Hex returns the lowercase hex SHA-256 of password.
func SHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// isSHA256Hex reports whether s looks like a SHA256Hex output.
func isSHA256Hex(s string) bool {
	if len(s) != sha256HexLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Wipe zeroes b. Best-effort only: copies made before the call survive.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
