package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for the given mode. "prod" and "production" log
// JSON at info level; anything else logs human-readable output at debug level.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	// stdout is the MCP stdio transport.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
