package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smartbartender/internal/crypto"
	"smartbartender/internal/domain"
	credentialsvc "smartbartender/internal/services/credential"
	"smartbartender/internal/store"
	"smartbartender/internal/web"
)

// Wire bundles the store, service and logger for commands to use.
type Wire struct {
	Config      Config
	Logger      *zap.Logger
	Store       domain.CredentialStore
	Credentials *credentialsvc.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. The data and static
// directories are created when the file backend is used.
func NewWire(ctx context.Context, cfg Config, logger *zap.Logger) (*Wire, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wire{Config: cfg, Logger: logger}

	hasher, err := crypto.NewHasher(cfg.Hash.Algorithm, cfg.Hash.BcryptCost)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.Home, cfg.StaticDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	switch cfg.Store.Backend {
	case BackendFile:
		w.Store = store.NewFileStore(cfg.Store.File)
	case BackendMemory:
		w.Store = store.NewMemoryStore(nil)
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.Store.Redis.Addr, err)
		}
		w.closers = append(w.closers, rdb.Close)
		w.Store = store.NewRedisStore(rdb, cfg.Store.Redis.Key)
	default:
		return nil, fmt.Errorf("unknown store.backend %q", cfg.Store.Backend)
	}

	w.Credentials = credentialsvc.New(w.Store, hasher, logger)
	logger.Debug("wired credential store",
		zap.String("backend", cfg.Store.Backend),
		zap.String("hash", cfg.Hash.Algorithm))
	return w, nil
}

// Bootstrap seeds the default admin account.
func (w *Wire) Bootstrap(ctx context.Context) error {
	_, err := w.Credentials.EnsureDefaultAdmin(ctx)
	return err
}

// NewServer builds the HTTP front end over the wired service. gin runs in
// release mode unless log.development is set.
func (w *Wire) NewServer() (*web.Server, error) {
	if !w.Config.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	return web.New(w.Credentials, web.Options{
		SiteURL:         w.Config.SiteURL,
		StaticDir:       w.Config.StaticDir,
		ShutdownTimeout: w.Config.ShutdownTimeout,
	}, w.Logger)
}

// Close releases backend connections.
func (w *Wire) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
