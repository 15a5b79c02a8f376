package domain

import (
	interfaces "smartbartender/internal/domain/interfaces"
	types "smartbartender/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username    = types.Username
	Digest      = types.Digest
	Credentials = types.Credentials
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialStore   = interfaces.CredentialStore
	CredentialService = interfaces.CredentialService
	PasswordHasher    = interfaces.PasswordHasher
)
