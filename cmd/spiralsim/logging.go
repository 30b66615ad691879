package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// parseLevel maps --log-level to a zap level. "none" and "off" keep only
// fatal records, which this program never writes. Unknown names mean info.
func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return zapcore.FatalLevel
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// newLogger writes console-encoded records to path. An empty path gives a
// no-op logger; stdout belongs to the terminal UI.
func newLogger(path, level string) (*zap.SugaredLogger, zap.AtomicLevel, func(), error) {
	atom := zap.NewAtomicLevelAt(parseLevel(level))
	if path == "" {
		return zap.NewNop().Sugar(), atom, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, atom, nil, fmt.Errorf("open log file: %w", err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), atom)
	logger := zap.New(core).Sugar()

	return logger, atom, func() {
		_ = logger.Sync()
		f.Close()
	}, nil
}
