// Package logging builds the zap loggers used across couchosd.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the minimum level and whether non-error output is shown.
type Config struct {
	Level string `toml:"level"`
	Quiet bool   `toml:"quiet"`
}

func DefaultConfig() Config {
	return Config{Level: "info"}
}

// ParseLevel accepts zap level names, case-insensitively.
func ParseLevel(s string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return l, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// Build creates the root logger. Errors go to stderr, everything else to
// stdout unless Quiet is set. The logger also replaces zap's globals.
func (c Config) Build() (*zap.SugaredLogger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeLevel = zapcore.CapitalLevelEncoder
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encConf)

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.ErrorLevel),
	}
	if !c.Quiet {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), between{level, zap.ErrorLevel}))
	}

	l := zap.New(zapcore.NewTee(cores...))
	zap.ReplaceGlobals(l)
	return l.Sugar(), nil
}

// between enables levels from min up to, but excluding, max.
type between struct {
	min, max zapcore.Level
}

func (b between) Enabled(l zapcore.Level) bool {
	return l >= b.min && l < b.max
}
