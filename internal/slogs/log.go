package slogs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// FormatJSON writes one JSON object per entry.
	FormatJSON = "json"

	// FormatConsole writes human readable entries.
	FormatConsole = "console"
)

// Config tunes the application logger.
type Config struct {
	Level      string
	Format     string
	File       string
	MaxSize    int
	MaxDays    int
	MaxBackups int
}

// Logger owns the zap logger and its rotating sink.
type Logger struct {
	*zap.Logger
	sink *lumberjack.Logger
}

// New builds a logger writing to cfg.File. The TUI owns the terminal, so an
// empty file yields a no-op logger rather than stderr output.
func New(cfg Config) (*Logger, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return &Logger{Logger: zap.NewNop()}, nil
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if cfg.Level == "" {
		lvl, err = zapcore.InfoLevel, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	sink := lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
	}
	core := zapcore.NewCore(encoder(cfg.Format), zapcore.AddSync(&sink), lvl)

	return &Logger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		sink:   &sink,
	}, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == FormatJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(cfg)
}
