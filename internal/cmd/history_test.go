package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/dirindex/internal/history"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestHistory_NoRuns(t *testing.T) {
	base, _ := setupWorkspace(t)

	stdout, _, err := executeCommand(t, "history", "--base-dir", base)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, "No runs recorded") {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestHistory_LimitAndDBFlag(t *testing.T) {
	base, _ := setupWorkspace(t)
	dbPath := filepath.Join(base, "custom.db")

	store, err := history.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	now := time.Now()
	for i, src := range []string{"/src/first", "/src/second", "/src/third"} {
		run := &history.Run{
			SourceDir:  src,
			TargetPath: "/out/dirindex.xml",
			Format:     "xml",
			TotalDirs:  1,
			TotalFiles: i,
			Bytes:      1500,
			CreatedAt:  now.Add(time.Duration(i) * time.Minute),
		}
		if err := store.RecordRun(context.Background(), run); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}
	store.Close()

	stdout, _, err := executeCommand(t, "history", "--base-dir", base, "--db", dbPath, "--limit", "2")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 runs, got:\n%s", stdout)
	}
	if !strings.HasPrefix(lines[0], "RUN") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "/src/third") || !strings.Contains(lines[2], "/src/second") {
		t.Errorf("runs not newest first:\n%s", stdout)
	}
	if !strings.Contains(lines[1], "1.5 kB") {
		t.Errorf("size not humanized: %q", lines[1])
	}
}

func TestHistory_RejectsArgs(t *testing.T) {
	base, _ := setupWorkspace(t)
	if _, _, err := executeCommand(t, "history", "extra", "--base-dir", base); err == nil {
		t.Error("expected error for positional argument")
	}
}
