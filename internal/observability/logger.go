// Package observability builds the process logger.
package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ironsheep/image-alter-mcp/internal/config"
)

// SetupLogger builds a zap.Logger from c, installs it as the global logger
// and redirects the stdlib log package to it. The caller should defer
// logger.Sync().
func SetupLogger(c config.LogConfig) (*zap.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	encCfg := encoderConfig(c.Development)
	var encoder zapcore.Encoder
	if strings.EqualFold(c.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	outputs := c.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	var cores []zapcore.Core
	for _, out := range outputs {
		ws, err := writerFor(out, c.Rotation)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, ws, level))
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	logger := zap.New(zapcore.NewTee(cores...), opts...)
	zap.ReplaceGlobals(logger)
	_, _ = zap.RedirectStdLogAt(logger, zap.InfoLevel)
	return logger, nil
}

func parseLevel(s string) (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level.SetLevel(zap.DebugLevel)
	case "", "info":
		level.SetLevel(zap.InfoLevel)
	case "warn", "warning":
		level.SetLevel(zap.WarnLevel)
	case "error":
		level.SetLevel(zap.ErrorLevel)
	default:
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func encoderConfig(dev bool) zapcore.EncoderConfig {
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}
	return zap.NewProductionEncoderConfig()
}

// writerFor maps an output name to a sink. Anything other than stdout or
// stderr is a file path, rotated by lumberjack when rotation is enabled.
func writerFor(out string, rot config.RotationConfig) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(out) {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	}

	if rot.Enable {
		name := out
		if strings.TrimSpace(rot.Filename) != "" {
			name = rot.Filename
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   name,
			MaxSize:    atLeast(rot.MaxSizeMB, 10),
			MaxBackups: atLeast(rot.MaxBackups, 1),
			MaxAge:     atLeast(rot.MaxAgeDays, 7),
			Compress:   rot.Compress,
		}), nil
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(f), nil
}

func atLeast(v, min int) int {
	if v > min {
		return v
	}
	return min
}
