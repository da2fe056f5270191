package logger

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	console := new(bytes.Buffer)
	cfg.Console = console
	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(t.TempDir(), DefaultDir)
	}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, console
}

func TestNew_Scenario(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)
	l, console := newTestLogger(t, Config{Now: func() time.Time { return start }})

	if filepath.Base(l.Session().Path) != "logs_2024-03-01_10-15.log" {
		t.Fatalf("unexpected path %s", l.Session().Path)
	}

	l.Named("app").Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(l.Session().Path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	re := regexp.MustCompile(`^\[\d{4}-\d\d-\d\d \d\d:\d\d:\d\d,\d{3}\] - app - INFO - hello\n$`)
	if !re.Match(data) {
		t.Fatalf("unexpected file content %q", data)
	}
	if console.String() != string(data) {
		t.Fatalf("console differs from file:\nfile:    %q\nconsole: %q", data, console.String())
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "app_logs")
	l, _ := newTestLogger(t, Config{Dir: dir})

	if _, err := os.Stat(l.Session().Path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestNew_DirectoryCannotBeCreated(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	dir := filepath.Join(blocker, "app_logs")

	l, err := New(Config{Dir: dir, Console: new(bytes.Buffer)})
	if err == nil {
		l.Close()
		t.Fatal("expected error when the directory cannot be created")
	}

	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InitError, got %T: %v", err, err)
	}
	if ie.Op != "create dir" || ie.Path != dir {
		t.Fatalf("unexpected error fields: %+v", ie)
	}

	matches, _ := filepath.Glob(filepath.Join(base, "*", "*", "*.log"))
	if len(matches) != 0 {
		t.Fatalf("expected no log file, found %v", matches)
	}
}

func TestNew_FileCannotBeOpened(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)
	cfg := Config{
		Dir:     filepath.Join(t.TempDir(), DefaultDir),
		Console: new(bytes.Buffer),
		Now:     func() time.Time { return start },
	}
	s := NewSession(cfg, start)
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		t.Fatalf("create directory at session path: %v", err)
	}

	l, err := New(cfg)
	if err == nil {
		l.Close()
		t.Fatal("expected error when the log file cannot be opened")
	}

	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InitError, got %T: %v", err, err)
	}
	if ie.Op != "open file" || ie.Path != s.Path {
		t.Fatalf("unexpected error fields: %+v", ie)
	}
}

func TestNew_BelowMinimumNotWritten(t *testing.T) {
	l, console := newTestLogger(t, Config{})

	l.Named("app").Debug("quiet")
	l.Close()

	data, err := os.ReadFile(l.Session().Path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) != 0 || console.Len() != 0 {
		t.Fatalf("expected no output, got file=%q console=%q", data, console.String())
	}
}

func TestNew_DebugLevel(t *testing.T) {
	l, console := newTestLogger(t, Config{Level: slog.LevelDebug})

	l.Named("app").Debug("verbose")

	if !bytes.Contains(console.Bytes(), []byte(" - app - DEBUG - verbose")) {
		t.Fatalf("expected debug line, got %q", console.String())
	}
}

func TestNew_SameMinuteAppends(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 15, 0, 0, time.Local)
	dir := filepath.Join(t.TempDir(), DefaultDir)
	now := func() time.Time { return start }

	first, _ := newTestLogger(t, Config{Dir: dir, Now: now})
	first.Root().Info("first")
	first.Close()

	second, _ := newTestLogger(t, Config{Dir: dir, Now: now})
	second.Root().Info("second")
	second.Close()

	if first.Session().Path != second.Session().Path {
		t.Fatalf("expected shared path, got %s and %s", first.Session().Path, second.Session().Path)
	}
	data, err := os.ReadFile(first.Session().Path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !bytes.Contains(data, []byte("first")) || !bytes.Contains(data, []byte("second")) {
		t.Fatalf("expected both sessions in the file, got %q", data)
	}
}

func TestNamed_SameHandle(t *testing.T) {
	l, _ := newTestLogger(t, Config{})

	if l.Named("app") != l.Named("app") {
		t.Fatal("expected the same logger for the same name")
	}
	if l.Named("app") == l.Named("db") {
		t.Fatal("expected different loggers for different names")
	}
	if l.Root() != l.Named("") {
		t.Fatal("expected Root to equal Named(\"\")")
	}
}

func TestNamed_Concurrent(t *testing.T) {
	l, _ := newTestLogger(t, Config{})

	const n = 16
	got := make([]*slog.Logger, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = l.Named("worker")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d received a different logger", i)
		}
	}
}

func TestUnregistered_NotCached(t *testing.T) {
	l, console := newTestLogger(t, Config{})

	for i := 0; i < 1000; i++ {
		l.Unregistered(fmt.Sprintf("client-%d", i)).Debug("filtered")
	}
	l.Unregistered("client-7").Info("visible")

	l.mu.RLock()
	n := len(l.named)
	l.mu.RUnlock()
	if n != 0 {
		t.Fatalf("expected empty registry, got %d entries", n)
	}
	if !bytes.Contains(console.Bytes(), []byte(" - client-7 - INFO - visible\n")) {
		t.Fatalf("unexpected console output %q", console.String())
	}
}

func TestClose_Idempotent(t *testing.T) {
	l, console := newTestLogger(t, Config{})

	if err := l.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	l.Root().Info("after close")
	if !bytes.Contains(console.Bytes(), []byte("after close")) {
		t.Fatalf("expected console output after close, got %q", console.String())
	}
}

func TestSetDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l, console := newTestLogger(t, Config{})
	l.SetDefault()

	slog.Info("through default")
	if !bytes.Contains(console.Bytes(), []byte(" - root - INFO - through default")) {
		t.Fatalf("unexpected console output %q", console.String())
	}
}
