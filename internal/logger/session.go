package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDir is the log directory, relative to the working directory.
	DefaultDir = "app_logs"

	// LineFormat describes the layout of every emitted line.
	LineFormat = "[<asctime>] - <name> - <levelname> - <message>"

	stampLayout = "2006-01-02_15-04"
)

// Suffix selects what, if anything, is appended to the timestamp in the log
// file name.
type Suffix string

const (
	SuffixNone   Suffix = ""
	SuffixPID    Suffix = "pid"
	SuffixRandom Suffix = "random"
)

// ParseSuffix validates a suffix mode name.
func ParseSuffix(s string) (Suffix, error) {
	switch Suffix(strings.ToLower(strings.TrimSpace(s))) {
	case SuffixNone, "none":
		return SuffixNone, nil
	case SuffixPID:
		return SuffixPID, nil
	case SuffixRandom:
		return SuffixRandom, nil
	}
	return SuffixNone, fmt.Errorf("unknown file suffix %q", s)
}

// Session holds the decisions made once per process run: when logging
// started, where the file lives and how lines are filtered and formatted.
type Session struct {
	Started  time.Time
	Stamp    string
	FileName string
	Dir      string
	Path     string
	Format   string
	Level    slog.Level
}

// LevelName returns the session minimum level as it appears in log lines.
func (s Session) LevelName() string {
	return LevelName(s.Level)
}

// NewSession derives the session for a process started at now. It does not
// touch the filesystem.
func NewSession(cfg Config, now time.Time) Session {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}

	started := now.Truncate(time.Minute)
	stamp := started.Format(stampLayout)
	name := fileName(stamp, cfg.Suffix)

	return Session{
		Started:  started,
		Stamp:    stamp,
		FileName: name,
		Dir:      dir,
		Path:     filepath.Join(dir, name),
		Format:   LineFormat,
		Level:    cfg.Level,
	}
}

func fileName(stamp string, suffix Suffix) string {
	switch suffix {
	case SuffixPID:
		return fmt.Sprintf("logs_%s_%d.log", stamp, os.Getpid())
	case SuffixRandom:
		return fmt.Sprintf("logs_%s_%s.log", stamp, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	default:
		return fmt.Sprintf("logs_%s.log", stamp)
	}
}
