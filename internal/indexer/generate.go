package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/harrison/dirindex/internal/filelock"
	"github.com/harrison/dirindex/internal/fileutil"
	"github.com/harrison/dirindex/internal/index"
)

// Logger is the subset of the dirindex loggers used during a run.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string)  {}
func (nopLogger) LogWarn(string)  {}

// Options configures one index run.
type Options struct {
	SourceDir       string // directory to index
	Recursive       bool
	ChildrenOnly    bool   // omit the source directory's own record (recursive runs only)
	DirnamePattern  string // unanchored regexp on directory names; empty keeps all
	FilenamePattern string // unanchored regexp on file names; empty keeps all
	Format          string // output format name, case-insensitive; empty means xml

	TempDir        string // base output directory
	TargetDir      string // subdirectory of TempDir, must be relative
	TargetFilename string
}

// TargetPath returns the file the index is written to.
func (o Options) TargetPath() string {
	return filepath.Join(o.TempDir, o.TargetDir, o.TargetFilename)
}

// Validate checks the options without scanning. It returns a *Error of
// KindConfig on failure.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

// resolvedOptions holds what resolve derives from Options.
type resolvedOptions struct {
	source     string // canonical source directory
	format     index.Format
	dirFilter  fileutil.Filter
	fileFilter fileutil.Filter
}

// resolve checks o and returns the canonical source directory, the parsed
// format and the name filters.
func (o Options) resolve() (*resolvedOptions, error) {
	if o.SourceDir == "" {
		return nil, newError(KindConfig, "", "source directory is required", nil)
	}

	abs, err := filepath.Abs(o.SourceDir)
	if err != nil {
		return nil, newError(KindConfig, o.SourceDir, "cannot resolve source directory", err)
	}
	source, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, newError(KindConfig, o.SourceDir, "source directory does not exist", err)
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, newError(KindConfig, source, "cannot access source directory", err)
	}
	if !info.IsDir() {
		return nil, newError(KindConfig, source, "source is not a directory", fileutil.ErrNotDirectory)
	}
	dir, err := os.Open(source)
	if err != nil {
		return nil, newError(KindConfig, source, "source directory is not readable", err)
	}
	dir.Close()

	format := index.DefaultFormat
	if o.Format != "" {
		format, err = index.ParseFormat(o.Format)
		if err != nil {
			return nil, newError(KindConfig, "", "invalid output format", err)
		}
	}

	dirFilter, fileFilter, err := BuildFilters(o.Recursive, o.DirnamePattern, o.FilenamePattern)
	if err != nil {
		return nil, newError(KindConfig, "", "invalid name filter", err)
	}

	if o.TempDir == "" {
		return nil, newError(KindConfig, "", "output directory is required", nil)
	}
	if filepath.IsAbs(o.TargetDir) {
		return nil, newError(KindConfig, o.TargetDir, "target directory must be relative", nil)
	}
	if fileutil.EscapesParent(o.TargetDir) {
		return nil, newError(KindConfig, o.TargetDir, "target directory must stay inside the output directory", nil)
	}
	if o.TargetFilename == "" {
		return nil, newError(KindConfig, "", "target filename is required", nil)
	}
	if o.TargetFilename != filepath.Base(o.TargetFilename) {
		return nil, newError(KindConfig, o.TargetFilename, "target filename must not contain a directory", nil)
	}

	return &resolvedOptions{
		source:     source,
		format:     format,
		dirFilter:  dirFilter,
		fileFilter: fileFilter,
	}, nil
}

// Result describes a completed run.
type Result struct {
	SourceDir  string // canonical path of the indexed directory
	TargetPath string
	Format     index.Format
	TotalDirs  int
	TotalFiles int
	Bytes      int // size of the written index
	Duration   time.Duration
}

// FoundTotalMessage formats the run totals for logging.
func FoundTotalMessage(dirs, files int) string {
	return fmt.Sprintf("Found a total of %s and %s",
		english.Plural(dirs, "directory", "directories"),
		english.Plural(files, "file", "files"))
}

// Generate scans opts.SourceDir, renders the index and writes it to
// opts.TargetPath(). Nothing is written unless every earlier step succeeded.
func Generate(opts Options, log Logger) (*Result, error) {
	if log == nil {
		log = nopLogger{}
	}
	start := time.Now()

	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	source, format := resolved.source, resolved.format

	log.LogDebug(fmt.Sprintf("Scanning %s (recursive=%t, children-only=%t)", source, opts.Recursive, opts.ChildrenOnly))
	tree, err := fileutil.BuildTreeFromDisk(source, resolved.dirFilter, resolved.fileFilter)
	if err != nil {
		return nil, newError(KindScan, source, "failed to scan source directory", err)
	}

	builder, err := index.NewBuilder(format)
	if err != nil {
		return nil, newError(KindConfig, "", "invalid output format", err)
	}

	totals, err := Assemble(tree, opts, builder)
	if err != nil {
		return nil, newError(KindRender, source, "failed to assemble index", err)
	}

	data, err := builder.Render()
	if err != nil {
		return nil, newError(KindRender, source, fmt.Sprintf("failed to render %s index", format), err)
	}

	log.LogInfo(FoundTotalMessage(totals.Dirs, totals.Files))

	target := opts.TargetPath()
	waiting := func(lockPath string) {
		log.LogInfo(fmt.Sprintf("Waiting for %s, another build is writing this index", lockPath))
	}
	if err := filelock.WriteIndex(target, data, waiting); err != nil {
		return nil, newError(KindWrite, target, "failed to write index", err)
	}
	log.LogDebug(fmt.Sprintf("Wrote %s index to %s (%s)", format, target, humanize.Bytes(uint64(len(data)))))

	return &Result{
		SourceDir:  source,
		TargetPath: target,
		Format:     format,
		TotalDirs:  totals.Dirs,
		TotalFiles: totals.Files,
		Bytes:      len(data),
		Duration:   time.Since(start),
	}, nil
}
