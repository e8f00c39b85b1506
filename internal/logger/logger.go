// Package logger builds the zap logger used by the calc command.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zephyrtronium/calc/internal/config"
)

// New creates a logger from the logging configuration. Console output goes
// to stderr, since stdout carries results. The returned close function
// flushes the logger and closes the log file, if there is one.
func New(cfg config.LoggingConfig) (*zap.Logger, func() error, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LoggingConfig, stderr io.Writer) (*zap.Logger, func() error, error) {
	if cfg.Output == "none" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, nil, fmt.Errorf("logging level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var (
		cores []zapcore.Core
		file  *lumberjack.Logger
	)
	if cfg.Output == "stderr" || cfg.Output == "both" || cfg.Output == "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(stderr), level))
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging output %q needs a file path", cfg.Output)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		// The file always gets JSON regardless of the console format.
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level))
	}
	if len(cores) == 0 {
		return nil, nil, fmt.Errorf("unknown logging output %q", cfg.Output)
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	closer := func() error {
		// Syncing a terminal fails on some platforms; only the file matters.
		log.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return log, closer, nil
}
