package logger

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RayIDKey is the fiber.Ctx locals key holding the request correlation ID.
const RayIDKey = "ray_id"

// New creates a zap logger from cfg. A debug level selects the development
// preset; console format switches to colored human-readable output.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config
	if strings.EqualFold(cfg.Level, "debug") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if str, ok := c.Locals(RayIDKey).(string); ok && str != "" {
		return l.With(zap.String(RayIDKey, str))
	}
	return l
}
