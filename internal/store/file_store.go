package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"smartbartender/internal/domain"
)

// DefaultFileName is the credential document name under the home directory.
const DefaultFileName = "users.json"

// FileStore keeps the credential mapping in a single JSON document on disk:
//
//	{
//	  "admin": "03ac6742...",
//	  "alice": "..."
//	}
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by the document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the credential document.
func (s *FileStore) Path() string { return s.path }

// Load reads the whole mapping. A missing or empty file is an empty mapping.
func (s *FileStore) Load(ctx context.Context) (domain.Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	creds := domain.Credentials{}
	if len(bytes.TrimSpace(b)) == 0 {
		return creds, nil
	}
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageCorrupt, s.path, err)
	}
	if creds == nil { // document was JSON null
		creds = domain.Credentials{}
	}
	return creds, nil
}

// Save replaces the document with creds.
func (s *FileStore) Save(ctx context.Context, creds domain.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if creds == nil {
		creds = domain.Credentials{}
	}
	if err := writeJSON(s.path, creds, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Compile-time assertion that FileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*FileStore)(nil)
