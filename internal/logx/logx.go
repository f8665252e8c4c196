package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	File       string
	MaxSizeMB  int
	MaxAgeDays int
	Level      string
	Console    bool
}

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
	closer io.Closer
)

// Init routes all categories to a rotated log file and, optionally, stderr.
func Init(opts Options) error {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	var rotating *lumberjack.Logger
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating = &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  opts.MaxSizeMB,
			MaxAge:   opts.MaxAgeDays,
		}
		writers = append(writers, rotating)
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if len(writers) == 0 {
		logger = zerolog.Nop()
		return nil
	}
	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	if rotating != nil {
		closer = rotating
	}
	return nil
}

// SetOutput is used by tests and by callers that manage their own writer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// Writer exposes the configured sink for access logs.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.Nop()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func emit(level zerolog.Level, category string, content []interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.WithLevel(level).Str("category", category).Msg(fmt.Sprint(content...))
}

func Info(category string, content ...interface{}) {
	emit(zerolog.InfoLevel, category, content)
}

func Error(category string, content ...interface{}) {
	emit(zerolog.ErrorLevel, category, content)
}

func Warn(category string, content ...interface{}) {
	emit(zerolog.WarnLevel, category, content)
}

func Debug(category string, content ...interface{}) {
	emit(zerolog.DebugLevel, category, content)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
