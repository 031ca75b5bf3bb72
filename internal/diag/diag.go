// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package diag provides the leveled diagnostic logging used across the
// collection and task-execution pipeline, in place of the ad hoc
// stderr prints the prototype used for "warn and drop" notices (a
// malformed pattern, a stale heritage.exclude_list entry, a
// dionysius.toml that failed to parse).
package diag

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// SetLevel adjusts the minimum level emitted by the package logger.
// The CLI's -v/--verbose flag calls this with slog.LevelDebug.
func SetLevel(level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a low-level trace message, e.g. per-directory traversal
// decisions.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs a routine progress message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a recoverable condition: a pattern failed to convert and
// was dropped, a heritage.exclude_list entry has no effect, a
// dionysius.toml in one subtree failed to parse and that subtree was
// skipped.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs a task execution failure that did not abort the run.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// WithContext returns the package logger. ctx is not consulted and no
// ctx-scoped attributes are attached.
func WithContext(ctx context.Context) *slog.Logger {
	return current()
}
