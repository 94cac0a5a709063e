// Package logging builds the zap loggers used by the formval binaries.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvProd selects the JSON production encoder.
const EnvProd = "prod"

// ValidLevels lists the accepted level names.
var ValidLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLevel reports whether level names a zap level, ignoring case.
func IsValidLevel(level string) bool {
	level = strings.ToLower(level)
	for _, valid := range ValidLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// Config returns the zap configuration for level and env. Unknown levels
// fall back to info.
func Config(level, env string) zap.Config {
	var cfg zap.Config
	if env == EnvProd {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := cfg.Level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// stdout belongs to the command output.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

// Build constructs a logger. An invalid level is reported on stderr and
// replaced by info.
func Build(level, env string) (*zap.Logger, error) {
	if level != "" && !IsValidLevel(level) {
		_, _ = os.Stderr.WriteString("WARNING: invalid log level \"" + level + "\"; defaulting to \"info\"\n")
	}
	return Config(level, env).Build()
}

// MustBuild exits the process when Build fails.
func MustBuild(level, env string) *zap.Logger {
	logger, err := Build(level, env)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	return logger
}
