// Package store provides persistence for the credential mapping.
//
// It contains concrete implementations of domain.CredentialStore. Each one
// loads and saves the whole username -> digest mapping at once; callers that
// need read-modify-write atomicity must serialise around Load and Save
// themselves (the credential service does).
//
// The package includes:
//   - FileStore, a JSON document on disk written via temp file + rename
//   - MemoryStore, an in-process map for tests and throwaway servers
//   - RedisStore, a single Redis hash
package store
