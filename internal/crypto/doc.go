// Package crypto exposes the password primitives used by the login gate.
//
// Contents
//
//   - Unsalted SHA-256 hex digests (SHA256Hex), the on-disk format of the
//     credential document
//   - PasswordHasher implementations: SHA256Hasher (default, deterministic)
//     and BcryptHasher (salted, opt-in, still verifies SHA-256 digests)
//   - Best-effort memory wiping for prompted passwords (Wipe)
//
// # Notes
//
// SHA256Hasher gives two users with the same password the same digest and
// uses a single hash round. It is kept as the default so existing credential
// files stay valid; choose BcryptHasher for new deployments.
package crypto
