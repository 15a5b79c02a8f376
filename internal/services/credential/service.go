package credential

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"smartbartender/internal/crypto"
	"smartbartender/internal/domain"
)

const (
	// DefaultAdminUsername is seeded on startup when absent.
	DefaultAdminUsername domain.Username = "admin"
	// DefaultAdminPassword is the password of the seeded admin entry.
	DefaultAdminPassword = "1234"
)

// Service implements domain.CredentialService on top of a store and a hasher.
type Service struct {
	store  domain.CredentialStore
	hasher domain.PasswordHasher
	logger *zap.Logger

	// mu spans each Load..Save cycle; the store only guards single calls.
	mu sync.Mutex
}

// New returns a credential service. A nil hasher means unsalted SHA-256; a
// nil logger discards output.
func New(store domain.CredentialStore, hasher domain.PasswordHasher, logger *zap.Logger) *Service {
	if hasher == nil {
		hasher = crypto.SHA256Hasher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		hasher: hasher,
		logger: logger.Named("credential"),
	}
}

// Hash returns the digest the service would store for password.
func (s *Service) Hash(password string) (domain.Digest, error) {
	return s.hasher.Hash(password)
}

// RegisterUser stores a new user. An existing username wins over a short
// password when both apply.
func (s *Service) RegisterUser(ctx context.Context, username domain.Username, password string) error {
	username = canonical(username)
	err := s.update(ctx, func(creds domain.Credentials) error {
		if _, ok := creds[username]; ok {
			return domain.ErrUsernameTaken
		}
		if err := checkLength(password); err != nil {
			return err
		}
		d, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}
		creds[username] = d
		return nil
	})
	if err != nil {
		s.logFailure("register", username, err)
		return err
	}
	s.logger.Info("user registered", zap.String("username", username.String()))
	return nil
}

// ResetPassword overwrites the digest of an existing user. The old password
// is not required.
func (s *Service) ResetPassword(ctx context.Context, username domain.Username, newPassword string) error {
	username = canonical(username)
	err := s.update(ctx, func(creds domain.Credentials) error {
		if _, ok := creds[username]; !ok {
			return domain.ErrUserNotFound
		}
		if err := checkLength(newPassword); err != nil {
			return err
		}
		d, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		creds[username] = d
		return nil
	})
	if err != nil {
		s.logFailure("reset", username, err)
		return err
	}
	s.logger.Info("password reset", zap.String("username", username.String()))
	return nil
}

// Authenticate reports whether username exists and password matches its
// digest. Storage failures are returned as errors, never as false.
func (s *Service) Authenticate(ctx context.Context, username domain.Username, password string) (bool, error) {
	username = canonical(username)
	s.mu.Lock()
	creds, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		s.logFailure("authenticate", username, err)
		return false, err
	}
	d, ok := creds[username]
	if !ok {
		return false, nil
	}
	return s.hasher.Verify(password, d), nil
}

// Check is Authenticate with a mismatch reported as domain.ErrInvalidCredentials.
func (s *Service) Check(ctx context.Context, username domain.Username, password string) error {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("username", username.String()))
		return domain.ErrInvalidCredentials
	}
	return nil
}

// EnsureDefaultAdmin seeds DefaultAdminUsername with DefaultAdminPassword if
// it is missing, and reports whether it did.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	var created bool
	err := s.update(ctx, func(creds domain.Credentials) error {
		if _, ok := creds[DefaultAdminUsername]; ok {
			return errUnchanged
		}
		d, err := s.hasher.Hash(DefaultAdminPassword)
		if err != nil {
			return err
		}
		creds[DefaultAdminUsername] = d
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", DefaultAdminUsername, err)
	}
	if created {
		s.logger.Warn("seeded default admin account; change its password",
			zap.String("username", DefaultAdminUsername.String()))
	}
	return created, nil
}

// Usernames returns every registered username in lexical order.
func (s *Service) Usernames(ctx context.Context) ([]domain.Username, error) {
	s.mu.Lock()
	creds, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Username, 0, len(creds))
	for u := range creds {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// errUnchanged lets an update callback skip the save.
var errUnchanged = errors.New("unchanged")

// update runs fn against a fresh copy of the mapping and saves the result,
// all under s.mu.
func (s *Service) update(ctx context.Context, fn func(domain.Credentials) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(creds); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	return s.store.Save(ctx, creds)
}

func (s *Service) logFailure(op string, username domain.Username, err error) {
	fields := []zap.Field{zap.String("op", op), zap.String("username", username.String()), zap.Error(err)}
	switch {
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrUserNotFound):
		s.logger.Info("request rejected", fields...)
	default:
		s.logger.Error("credential operation failed", fields...)
	}
}

// canonical replaces invalid UTF-8 in username with U+FFFD, the form the
// JSON document persists it in, so lookups and saves agree on the key.
func canonical(username domain.Username) domain.Username {
	return domain.Username(strings.ToValidUTF8(username.String(), "\uFFFD"))
}

func checkLength(password string) error {
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}

// Compile-time assertion that Service implements domain.CredentialService.
var _ domain.CredentialService = (*Service)(nil)
