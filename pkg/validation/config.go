package validation

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ValidateLogLevel checks that level parses as a zap level. Empty is allowed
// and means the caller's default.
func ValidateLogLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// ValidateLogFormat checks the logger encoding.
func ValidateLogFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console", "json":
		return nil
	}
	return fmt.Errorf("expected log format of console or json, got %s", format)
}

// ValidateRateLimit checks a token bucket configuration.
func ValidateRateLimit(rps float64, burst int) error {
	if rps <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %g", rps)
	}
	if burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", burst)
	}
	return nil
}
