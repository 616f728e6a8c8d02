package display

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/dirindex/internal/indexer"
	"github.com/mattn/go-isatty"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}
		for i, p := range w.Paths {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, p))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	c := color.New(color.FgYellow)
	if isTerminal(out) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(out, b.String())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CheckOptions returns warnings for option combinations that are accepted but
// probably not what the user meant.
func CheckOptions(opts indexer.Options) []Warning {
	var warnings []Warning

	if !opts.Recursive && opts.ChildrenOnly {
		warnings = append(warnings, Warning{
			Title:      "Children-only mode has no effect",
			Message:    "source_children_only only applies to recursive scans; the source directory record will be written",
			Suggestion: "Enable recursive or drop source_children_only",
		})
	}

	if !opts.Recursive && opts.DirnamePattern != "" {
		warnings = append(warnings, Warning{
			Title:      "Directory name filter is unused",
			Message:    fmt.Sprintf("dirname_regex %q is ignored because subdirectories are not scanned", opts.DirnamePattern),
			Suggestion: "Enable recursive or drop dirname_regex",
		})
	}

	if opts.SourceDir != "" && opts.TempDir != "" && opts.TargetFilename != "" {
		if inside(opts.SourceDir, opts.TargetPath()) {
			warnings = append(warnings, Warning{
				Title:      "Index file is inside the source directory",
				Message:    "the next run will list the previous index",
				Paths:      []string{opts.TargetPath()},
				Suggestion: "Move temp_directory outside the source tree or exclude the index with filename_regex",
			})
		}
	}

	return warnings
}

// CheckHistoryPath warns when the history database lies inside the source
// directory, where every run would index the database written by the last one.
func CheckHistoryPath(sourceDir, dbPath string) []Warning {
	if sourceDir == "" || dbPath == "" || dbPath == ":memory:" {
		return nil
	}
	if !inside(sourceDir, dbPath) {
		return nil
	}
	return []Warning{{
		Title:      "History database is inside the source directory",
		Message:    "the next run will list the history database",
		Paths:      []string{dbPath},
		Suggestion: "Set history.db_path or DIRINDEX_HOME outside the source tree, or pass --no-history",
	}}
}

// inside reports whether path lies within dir. Both are made absolute first.
func inside(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
