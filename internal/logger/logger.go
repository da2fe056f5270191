// Package logger owns the process log session: it derives a timestamped file
// under the log directory and hands out named slog loggers that write every
// line to both that file and the console.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Config controls how a session is built. The zero value gives the defaults:
// app_logs/, INFO, stdout.
type Config struct {
	Dir        string
	Level      slog.Level
	Suffix     Suffix
	TimeLayout string

	// Console is the second sink. Nil means os.Stdout.
	Console io.Writer
	// Now is read once to name the session. Nil means time.Now.
	Now func() time.Time
}

// InitError reports a failure to set up the file sink.
type InitError struct {
	Op   string
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("logger: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Logger is the handle returned by New. It is safe for concurrent use.
type Logger struct {
	session Session
	file    *os.File
	handler *LineHandler

	mu    sync.RWMutex
	named map[string]*slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New creates the log directory if needed, opens the session file for
// appending and returns a Logger writing to the file and the console.
func New(cfg Config) (*Logger, error) {
	if cfg.Console == nil {
		cfg.Console = os.Stdout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := NewSession(cfg, cfg.Now())

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, &InitError{Op: "create dir", Path: s.Dir, Err: err}
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &InitError{Op: "open file", Path: s.Path, Err: err}
	}

	return &Logger{
		session: s,
		file:    f,
		handler: NewLineHandler(s.Level, cfg.TimeLayout, f, cfg.Console),
		named:   make(map[string]*slog.Logger),
	}, nil
}

// Session returns the session this logger was built with.
func (l *Logger) Session() Session {
	return l.session
}

// Root returns the unnamed logger.
func (l *Logger) Root() *slog.Logger {
	return l.Named("")
}

// Named returns the logger for name, creating it on first use. Repeated calls
// with the same name return the same *slog.Logger.
func (l *Logger) Named(name string) *slog.Logger {
	l.mu.RLock()
	lg, ok := l.named[name]
	l.mu.RUnlock()
	if ok {
		return lg
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lg, ok := l.named[name]; ok {
		return lg
	}
	lg = slog.New(l.handler.WithName(name))
	l.named[name] = lg
	return lg
}

// Unregistered returns a logger for name without adding it to the registry.
// Use it for names that come from outside the process.
func (l *Logger) Unregistered(name string) *slog.Logger {
	return slog.New(l.handler.WithName(name))
}

// SetDefault installs the root logger as slog's default.
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Root())
}

// Close releases the file sink. Records emitted afterwards still reach the
// console, and the file write error is returned from the handler.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.file.Close()
	})
	return l.closeErr
}
