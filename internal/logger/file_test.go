package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	runID := "3f2b9c1e-6d4a-4c58-9a1e-0b7f5d2c8e11"

	fl, err := NewFileLogger(logDir, "info", runID)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer fl.Close()

	base := filepath.Base(fl.Path())
	if !strings.HasPrefix(base, "run-") || !strings.HasSuffix(base, "-3f2b9c1e.log") {
		t.Errorf("unexpected run log name %q", base)
	}

	target, err := os.Readlink(filepath.Join(logDir, LatestLogName))
	if err != nil {
		t.Fatalf("latest.log symlink missing: %v", err)
	}
	if target != base {
		t.Errorf("latest.log points to %q, want %q", target, base)
	}
}

func TestFileLogger_WritesHeaderMessagesAndSummary(t *testing.T) {
	logDir := t.TempDir()
	fl, err := NewFileLogger(logDir, "info", "run-1234")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	fl.LogDebug("filtered out")
	fl.LogInfo("Found a total of 2 directories and 1 file")
	fl.LogWarn("history disabled")
	fl.LogSummary(sampleResult())
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(fl.Path())
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"=== dirindex Run Log ===",
		"Run ID: run-1234",
		"[INFO] Found a total of 2 directories and 1 file",
		"[WARN] history disabled",
		"=== Index Summary ===",
		"Total directories: 2",
		"Total files: 1",
		"Size: 2.0 kB (2048 bytes)",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("run log missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "filtered out") {
		t.Error("debug message should be filtered at info level")
	}
}

func TestFileLogger_LatestLogReplaced(t *testing.T) {
	logDir := t.TempDir()

	first, err := NewFileLogger(logDir, "info", "aaaaaaaa-1")
	if err != nil {
		t.Fatalf("first logger: %v", err)
	}
	first.Close()

	second, err := NewFileLogger(logDir, "info", "bbbbbbbb-2")
	if err != nil {
		t.Fatalf("second logger: %v", err)
	}
	defer second.Close()

	target, err := os.Readlink(filepath.Join(logDir, LatestLogName))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != filepath.Base(second.Path()) {
		t.Errorf("latest.log points to %q, want %q", target, filepath.Base(second.Path()))
	}
}

func TestFileLogger_WritesAfterCloseAreDropped(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info", "")
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	fl.LogInfo("after close")
	if err := fl.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
