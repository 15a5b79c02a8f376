package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"smartbartender/internal/crypto"
	"smartbartender/internal/store"
	"smartbartender/internal/web"
)

// EnvPrefix is prepended to environment overrides, e.g. SMARTBAR_LISTEN.
const EnvPrefix = "SMARTBAR"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home            string        `mapstructure:"home"`       // data directory, e.g. $HOME/.smartbartender
	Listen          string        `mapstructure:"listen"`     // HTTP listen address
	StaticDir       string        `mapstructure:"static_dir"` // served under /static; defaults to <home>/static
	SiteURL         string        `mapstructure:"site_url"`   // external link shown after login
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Store StoreConfig `mapstructure:"store"`
	Hash  HashConfig  `mapstructure:"hash"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig selects and configures the credential backend.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	File    string      `mapstructure:"file"` // relative paths resolve against Home
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// HashConfig selects the password hasher.
type HashConfig struct {
	Algorithm  string `mapstructure:"algorithm"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("home", "")
	v.SetDefault("listen", "0.0.0.0:8014")
	v.SetDefault("static_dir", "")
	v.SetDefault("site_url", web.DefaultSiteURL)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.file", store.DefaultFileName)
	v.SetDefault("store.redis.addr", "127.0.0.1:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.key", store.DefaultRedisKey)
	v.SetDefault("hash.algorithm", crypto.AlgorithmSHA256)
	v.SetDefault("hash.bcrypt_cost", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// LoadConfig reads configFile (optional), the environment and defaults from v
// and returns a validated Config with resolved paths.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// resolve fills Home and turns relative data paths into absolute ones.
func (c *Config) resolve() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".smartbartender")
	}
	if c.StaticDir == "" {
		c.StaticDir = filepath.Join(c.Home, "static")
	}
	if c.Store.File == "" {
		c.Store.File = store.DefaultFileName
	}
	if !filepath.IsAbs(c.Store.File) {
		c.Store.File = filepath.Join(c.Home, c.Store.File)
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	return nil
}

// Validate rejects settings the wiring cannot honour.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q", c.Store.Backend))
	}
	if _, err := crypto.NewHasher(c.Hash.Algorithm, c.Hash.BcryptCost); err != nil {
		errs = append(errs, err)
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}
