package display

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/dirindex/internal/indexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "Configuration Missing"}.Display(&buf)

	assert.Equal(t, "Warning: Configuration Missing\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[", "no color codes for non-terminals")
}

func TestDisplayWarning_AllFields(t *testing.T) {
	var buf bytes.Buffer
	Warning{
		Title:      "Index file is inside the source directory",
		Message:    "the next run will list the previous index",
		Paths:      []string{"/src/out/dirindex.xml"},
		Suggestion: "Move temp_directory",
	}.Display(&buf)

	assert.Equal(t, strings.Join([]string{
		"Warning: Index file is inside the source directory",
		"    the next run will list the previous index",
		"    Affected path:",
		"      1. /src/out/dirindex.xml",
		"    Suggestion:",
		"    Move temp_directory",
		"",
	}, "\n"), buf.String())
}

func TestDisplayWarning_PluralPaths(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "t", Paths: []string{"a", "b"}}.Display(&buf)

	assert.Contains(t, buf.String(), "Affected paths:")
	assert.Contains(t, buf.String(), "      2. b\n")
}

func TestCheckOptions(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	out := filepath.Join(tmp, "build")

	tests := []struct {
		name   string
		opts   indexer.Options
		titles []string
	}{
		{
			name: "clean",
			opts: indexer.Options{SourceDir: src, Recursive: true, ChildrenOnly: true, DirnamePattern: "x", TempDir: out, TargetFilename: "i.xml"},
		},
		{
			name:   "children-only without recursion",
			opts:   indexer.Options{SourceDir: src, ChildrenOnly: true, TempDir: out, TargetFilename: "i.xml"},
			titles: []string{"Children-only mode has no effect"},
		},
		{
			name:   "dirname filter without recursion",
			opts:   indexer.Options{SourceDir: src, DirnamePattern: "^a", TempDir: out, TargetFilename: "i.xml"},
			titles: []string{"Directory name filter is unused"},
		},
		{
			name:   "target inside source",
			opts:   indexer.Options{SourceDir: src, Recursive: true, TempDir: filepath.Join(src, "gen"), TargetFilename: "i.xml"},
			titles: []string{"Index file is inside the source directory"},
		},
		{
			name: "sibling with common prefix is outside",
			opts: indexer.Options{SourceDir: src, Recursive: true, TempDir: src + "-out", TargetFilename: "i.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := CheckOptions(tt.opts)
			require.Len(t, warnings, len(tt.titles))
			for i, w := range warnings {
				assert.Equal(t, tt.titles[i], w.Title)
			}
		})
	}
}

func TestCheckHistoryPath(t *testing.T) {
	tests := []struct {
		name   string
		source string
		dbPath string
		want   bool
	}{
		{"inside source", "/src/R", "/src/R/.dirindex/history.db", true},
		{"outside source", "/src/R", "/home/u/.cache/dirindex/history.db", false},
		{"sibling with common prefix", "/src/R", "/src/R2/history.db", false},
		{"in memory", "/src/R", ":memory:", false},
		{"no path", "/src/R", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := CheckHistoryPath(tt.source, tt.dbPath)
			if !tt.want {
				assert.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1)
			assert.Equal(t, "History database is inside the source directory", warnings[0].Title)
			assert.Equal(t, []string{tt.dbPath}, warnings[0].Paths)
		})
	}
}
