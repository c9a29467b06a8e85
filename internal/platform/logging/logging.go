package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a named logger for the given runtime environment: structured
// JSON output for "production", human-readable output otherwise.
func New(env, name string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Named(name), nil
}
