// Package uilog writes application logs to a file. The terminal UI owns
// stdout and stderr while it runs, so anything worth keeping goes here.
package uilog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger appends timestamped key-value lines to a file.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	min     Level
	enabled bool
}

// Log is the process-wide logger. Disabled until Init is called with a
// path, so call sites never need to guard.
var (
	Log      = &Logger{min: LevelInfo}
	initOnce sync.Once
)

// Init opens the log file and enables the global logger. An empty path
// leaves logging disabled. Safe to call more than once; only the first
// call opens a file.
func Init(path string, verbose bool) error {
	if path == "" {
		return nil
	}
	var initErr error
	initOnce.Do(func() {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			initErr = err
			return
		}
		Log.file = f
		Log.enabled = true
		if verbose {
			Log.min = LevelDebug
		}
		Log.Info("log opened", "path", path)
	})
	return initErr
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Writer exposes the log destination for libraries that want an
// io.Writer. Discards when logging is disabled.
func (l *Logger) Writer() io.Writer {
	if !l.enabled || l.file == nil {
		return io.Discard
	}
	return l.file
}

func (l *Logger) write(level Level, msg string, keyvals ...any) {
	if !l.enabled || l.file == nil || level < l.min {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%s [%s] %s", time.Now().Format("15:04:05.000"), levelNames[level], msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.file, line)
}

// Debug logs at debug level with optional key-value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) { l.write(LevelDebug, msg, keyvals...) }

// Info logs at info level with optional key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) { l.write(LevelInfo, msg, keyvals...) }

// Warn logs at warn level with optional key-value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) { l.write(LevelWarn, msg, keyvals...) }

// Error logs at error level with optional key-value pairs.
func (l *Logger) Error(msg string, keyvals ...any) { l.write(LevelError, msg, keyvals...) }

// Timed logs the duration of an operation:
//
//	defer uilog.Log.Timed("refresh")()
func (l *Logger) Timed(op string) func() {
	if !l.enabled {
		return func() {}
	}
	start := time.Now()
	l.Debug(op, "status", "started")
	return func() {
		l.Debug(op, "status", "done", "took", time.Since(start))
	}
}
