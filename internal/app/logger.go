package app

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development mode switches to the
// console encoder with caller and stack traces on warnings.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		zc.Level = lvl
	}
	return zc.Build()
}
