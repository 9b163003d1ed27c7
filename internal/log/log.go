// Package log provides category-based structured logging for carillon.
// The TUI owns stdout, so all output goes to a log file. Logging is
// disabled entirely until Init is called, which keeps tests quiet.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
)

// Category identifies the subsystem a log line belongs to.
type Category string

const (
	// CatAudio covers the cue engine and clip playback.
	CatAudio Category = "audio"
	// CatQuiz covers word-quiz runs.
	CatQuiz Category = "quiz"
	// CatWords covers word-pool fetching and watching.
	CatWords Category = "words"
	// CatUI covers the bubbletea layer.
	CatUI Category = "ui"
	// CatConfig covers configuration loading.
	CatConfig Category = "config"
	// CatTTS covers the clip-generation utility.
	CatTTS Category = "tts"
)

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	closer  io.Closer
	level   = new(slog.LevelVar)
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init opens (or creates) the log file at path and routes all subsequent
// log calls to it. Calling Init again closes the previous file first.
func Init(path string, debugEnabled bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	if debugEnabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	closer = f
	return nil
}

// Close flushes and closes the log file. Safe to call when Init never ran.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	logger = nil
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return discard
	}
	return logger
}

func args(cat Category, kv []any) []any {
	return append([]any{"cat", string(cat)}, kv...)
}

// Debug logs at debug level under the given category.
func Debug(cat Category, msg string, kv ...any) {
	get().Debug(msg, args(cat, kv)...)
}

// Info logs at info level under the given category.
func Info(cat Category, msg string, kv ...any) {
	get().Info(msg, args(cat, kv)...)
}

// Warn logs at warn level under the given category.
func Warn(cat Category, msg string, kv ...any) {
	get().Warn(msg, args(cat, kv)...)
}

// Error logs at error level under the given category.
func Error(cat Category, msg string, kv ...any) {
	get().Error(msg, args(cat, kv)...)
}

// ErrorErr logs an error value alongside the message.
func ErrorErr(cat Category, msg string, err error, kv ...any) {
	get().Error(msg, args(cat, append([]any{"error", err}, kv...))...)
}

// SafeGo runs fn in a goroutine with panic recovery. A panicking goroutine
// must never take down the TUI; the panic is logged with its stack instead.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(CatUI, "recovered panic in goroutine",
					"goroutine", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
