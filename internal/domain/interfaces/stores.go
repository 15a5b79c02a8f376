package interfaces

import (
	"context"

	domaintypes "smartbartender/internal/domain/types"
)

// CredentialStore persists the username -> digest mapping as one document.
//
// Load returns an empty mapping when nothing has been persisted yet and an
// error wrapping domain.ErrStorageCorrupt when the document cannot be decoded.
// Save replaces the persisted document with creds.
type CredentialStore interface {
	Load(ctx context.Context) (domaintypes.Credentials, error)
	Save(ctx context.Context, creds domaintypes.Credentials) error
}
