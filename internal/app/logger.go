// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/logger"
)

// InitializeLogger configures the global logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
