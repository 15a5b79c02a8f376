package crypto

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"smartbartender/internal/domain"
)

// Supported values for the hash.algorithm setting.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmBcrypt = "bcrypt"
)

// SHA256Hasher stores SHA256Hex digests. Hash never fails.
type SHA256Hasher struct{}

// Hash returns the hex SHA-256 digest of password.
func (SHA256Hasher) Hash(password string) (domain.Digest, error) {
	return domain.Digest(SHA256Hex(password)), nil
}

// Verify compares in constant time against the stored digest.
func (SHA256Hasher) Verify(password string, digest domain.Digest) bool {
	want := []byte(strings.ToLower(digest.String()))
	got := []byte(SHA256Hex(password))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// BcryptHasher stores salted bcrypt digests.
//
// Digests that are plain SHA-256 hex (written by SHA256Hasher) still verify,
// so a credential file can be switched over without a migration.
type BcryptHasher struct {
	Cost int
}

// Hash returns a bcrypt digest of password. Passwords longer than 72 bytes
// are rejected by bcrypt.
func (h BcryptHasher) Hash(password string) (domain.Digest, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return domain.Digest(b), nil
}

// Verify accepts either a bcrypt digest or a legacy SHA-256 hex digest.
func (h BcryptHasher) Verify(password string, digest domain.Digest) bool {
	if isSHA256Hex(digest.String()) {
		return SHA256Hasher{}.Verify(password, digest)
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// NewHasher returns the hasher for algorithm. bcryptCost is ignored for sha256.
func NewHasher(algorithm string, bcryptCost int) (domain.PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", AlgorithmSHA256:
		return SHA256Hasher{}, nil
	case AlgorithmBcrypt:
		if bcryptCost != 0 && (bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}

// Compile-time assertions that both hashers implement domain.PasswordHasher.
var (
	_ domain.PasswordHasher = SHA256Hasher{}
	_ domain.PasswordHasher = BcryptHasher{}
)
