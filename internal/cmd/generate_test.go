package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate_WritesPlainIndex(t *testing.T) {
	base, source := setupWorkspace(t)

	stdout, stderr, err := executeCommand(t, "generate", source,
		"--base-dir", base, "-f", "text-name-only", "--log-level", "warn")
	if err != nil {
		t.Fatalf("generate failed: %v\nstderr: %s", err, stderr)
	}

	target := filepath.Join(base, "build", "dirindex", "dirindex.txt")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("index not written: %v", err)
	}
	if want := "/\na.txt\nsub/\nsub/b.txt\n"; string(data) != want {
		t.Errorf("index content = %q, want %q", string(data), want)
	}

	if !strings.Contains(stdout, "Index written to "+target) {
		t.Errorf("stdout missing target path: %q", stdout)
	}
	if !strings.Contains(stdout, "2 directories and 2 files") {
		t.Errorf("stdout missing totals: %q", stdout)
	}
}

func TestGenerate_ConfigFileAndFlagOverride(t *testing.T) {
	base, _ := setupWorkspace(t)
	mustWrite(t, filepath.Join(base, ".dirindex", "config.yaml"), `
source_directory: R
output_format: text-name-only
temp_directory: out
target_directory: META-INF
target_filename: files.txt
`)

	_, stderr, err := executeCommand(t, "generate", "--base-dir", base,
		"--no-recursive", "--log-level", "error", "--no-history")
	if err != nil {
		t.Fatalf("generate failed: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(base, "out", "META-INF", "files.txt"))
	if err != nil {
		t.Fatalf("index not written: %v", err)
	}
	if want := "/\na.txt\n"; string(data) != want {
		t.Errorf("index content = %q, want %q", string(data), want)
	}
	if _, err := os.Stat(filepath.Join(base, ".home", "history.db")); !os.IsNotExist(err) {
		t.Errorf("--no-history should not create a history database, stat err = %v", err)
	}
}

func TestGenerate_ChildrenOnlyWarnsWithoutRecursion(t *testing.T) {
	base, source := setupWorkspace(t)

	_, stderr, err := executeCommand(t, "generate", source, "--base-dir", base,
		"--no-recursive", "--children-only", "--no-history")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(stderr, "Children-only mode has no effect") {
		t.Errorf("expected children-only warning, got stderr: %q", stderr)
	}
}

func TestGenerate_RecordsHistory(t *testing.T) {
	base, source := setupWorkspace(t)

	for i := 0; i < 2; i++ {
		if _, stderr, err := executeCommand(t, "generate", source, "--base-dir", base); err != nil {
			t.Fatalf("generate #%d failed: %v\nstderr: %s", i+1, err, stderr)
		}
	}

	stdout, _, err := executeCommand(t, "history", "--base-dir", base)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 runs, got %d lines:\n%s", len(lines), stdout)
	}
	if !strings.Contains(lines[1], source) || !strings.Contains(lines[1], "xml") {
		t.Errorf("run line missing source or format: %q", lines[1])
	}
}

func TestGenerate_WritesRunLog(t *testing.T) {
	base, source := setupWorkspace(t)
	logDir := filepath.Join(base, "logs")

	if _, _, err := executeCommand(t, "generate", source, "--base-dir", base,
		"--log-dir", logDir, "--no-history"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("run log missing: %v", err)
	}
	if !strings.Contains(string(data), "Found a total of 2 directories and 2 files") {
		t.Errorf("run log missing totals:\n%s", data)
	}
}

func TestGenerate_Errors(t *testing.T) {
	base, source := setupWorkspace(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing source",
			args:    []string{"generate", "--base-dir", base},
			wantErr: "source_directory is required",
		},
		{
			name:    "nonexistent source",
			args:    []string{"generate", filepath.Join(base, "nope"), "--base-dir", base},
			wantErr: "does not exist",
		},
		{
			name:    "bad format",
			args:    []string{"generate", source, "--base-dir", base, "-f", "yaml"},
			wantErr: "invalid output_format",
		},
		{
			name:    "bad regex",
			args:    []string{"generate", source, "--base-dir", base, "--filename-regex", "("},
			wantErr: "filename_regex",
		},
		{
			name:    "absolute target dir",
			args:    []string{"generate", source, "--base-dir", base, "--target-dir", "/abs"},
			wantErr: "relative",
		},
		{
			name:    "target dir escaping temp dir",
			args:    []string{"generate", source, "--base-dir", base, "--target-dir", "../.."},
			wantErr: "must be relative to temp_directory",
		},
		{
			name:    "conflicting recursion flags",
			args:    []string{"generate", source, "--base-dir", base, "--recursive", "--no-recursive"},
			wantErr: "cannot use both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(base, "build")); !os.IsNotExist(err) {
		t.Errorf("failed runs should not create the output directory, stat err = %v", err)
	}
}

func TestGenerate_RepeatedRunsFromSourceAreStable(t *testing.T) {
	base, source := setupWorkspace(t)
	t.Setenv("DIRINDEX_HOME", "")
	t.Setenv("HOME", filepath.Join(base, "user"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "user", "cache"))
	// Equivalent of t.Chdir (Go 1.24+) for the Go 1.21 toolchain.
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(source); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	target := filepath.Join(base, "out", "dirindex.txt")
	var outputs []string
	for i := 0; i < 2; i++ {
		_, stderr, err := executeCommand(t, "generate", ".", "--base-dir", base,
			"--temp-dir", filepath.Join(base, "out"), "-f", "text-name-only")
		if err != nil {
			t.Fatalf("generate #%d failed: %v\nstderr: %s", i+1, err, stderr)
		}
		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("index not written: %v", err)
		}
		outputs = append(outputs, string(data))
	}

	if outputs[0] != outputs[1] {
		t.Errorf("second run differs from first:\nrun1 %q\nrun2 %q", outputs[0], outputs[1])
	}
	if want := "/\na.txt\nsub/\nsub/b.txt\n"; outputs[1] != want {
		t.Errorf("index content = %q, want %q", outputs[1], want)
	}
	if exists(filepath.Join(source, ".dirindex")) {
		t.Error("history database should not be created inside the source directory")
	}
}

func TestGenerate_WarnsWhenHistoryInsideSource(t *testing.T) {
	base, source := setupWorkspace(t)
	t.Setenv("DIRINDEX_HOME", filepath.Join(source, ".dirindex"))

	_, stderr, err := executeCommand(t, "generate", source, "--base-dir", base)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(stderr, "History database is inside the source directory") {
		t.Errorf("expected history warning, got stderr: %q", stderr)
	}
}
