package interfaces

import (
	"context"

	domaintypes "smartbartender/internal/domain/types"
)

// PasswordHasher turns passwords into digests and checks them.
type PasswordHasher interface {
	Hash(password string) (domaintypes.Digest, error)
	Verify(password string, digest domaintypes.Digest) bool
}

// CredentialService registers users, resets passwords and checks logins.
type CredentialService interface {
	RegisterUser(ctx context.Context, username domaintypes.Username, password string) error
	ResetPassword(ctx context.Context, username domaintypes.Username, newPassword string) error
	Authenticate(ctx context.Context, username domaintypes.Username, password string) (bool, error)
	Check(ctx context.Context, username domaintypes.Username, password string) error
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
	Usernames(ctx context.Context) ([]domaintypes.Username, error)
}
