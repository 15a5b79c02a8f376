package types

// Username is the unique, case-sensitive key of a credential record.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Digest is the stored one-way transform of a password.
type Digest string

// String returns the string form of the digest.
func (d Digest) String() string { return string(d) }

// Credentials maps every registered username to its password digest.
//
// The whole mapping is the unit of persistence: it is loaded and saved
// wholesale, never patched in place.
type Credentials map[Username]Digest

// Clone returns an independent copy of c. A nil receiver yields an empty map.
func (c Credentials) Clone() Credentials {
	out := make(Credentials, len(c))
	for u, d := range c {
		out[u] = d
	}
	return out
}
