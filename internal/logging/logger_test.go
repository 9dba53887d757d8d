package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(&Config{
		Level:  LevelDebug,
		LogDir: filepath.Join(dir, "logs"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	logger.Info("test message", "key", "value")

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "test message") {
		t.Errorf("log file should contain the message, got: %s", data)
	}
	if !strings.Contains(string(data), "key=value") {
		t.Errorf("log file should contain structured attrs, got: %s", data)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(&Config{
		Level:  LevelWarn,
		LogDir: dir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("log should not contain messages below level, got: %s", data)
	}
	if !strings.Contains(string(data), "visible warn") {
		t.Errorf("log should contain warn message, got: %s", data)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNewNoop(t *testing.T) {
	logger := NewNoop()

	// Should not panic and should not create files.
	logger.Info("discarded")
	logger.Error("also discarded")

	if logger.LogPath() != "" {
		t.Errorf("noop logger should have no log path, got %q", logger.LogPath())
	}
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(&Config{Level: LevelInfo, LogDir: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	logger.With("component", "uigen").Info("generated")

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "component=uigen") {
		t.Errorf("log should contain With attrs, got: %s", data)
	}
}

func TestCleanup_RemovesOldLogs(t *testing.T) {
	dir := t.TempDir()

	// Plant a stale log file.
	stale := filepath.Join(dir, "plotdev_20200101_000000.log")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	old := time.Now().Add(-30 * 24 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	logger, err := New(&Config{
		Level:     LevelInfo,
		LogDir:    dir,
		MaxLogAge: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	logger.Cleanup()

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale log file should have been removed")
	}
	if _, err := os.Stat(logger.LogPath()); err != nil {
		t.Errorf("current log file should be kept: %v", err)
	}
}

func TestGlobal_DefaultsToNoop(t *testing.T) {
	SetGlobal(nil)

	// Must not panic even when never initialized.
	Info("message to nowhere")
	if Global() == nil {
		t.Fatal("Global() should never return nil")
	}
}

func TestInitGlobal(t *testing.T) {
	dir := t.TempDir()

	if err := InitGlobal(&Config{Level: LevelInfo, LogDir: dir}); err != nil {
		t.Fatalf("InitGlobal() error = %v", err)
	}
	defer func() { _ = CloseGlobal() }()

	Info("global message")

	path := Global().LogPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read global log: %v", err)
	}
	if !strings.Contains(string(data), "global message") {
		t.Errorf("global log should contain message, got: %s", data)
	}
}
