package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harrison/dirindex/internal/fileutil"
	"github.com/harrison/dirindex/internal/index"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultTempDirectory = "build/dirindex"
	DefaultLogLevel      = "info"
	defaultTargetBase    = "dirindex"
)

// HistoryConfig controls the run history database
type HistoryConfig struct {
	// Enabled records every successful generate run
	Enabled bool `yaml:"enabled"`

	// DBPath overrides the database location (default: $DIRINDEX_HOME/history.db)
	DBPath string `yaml:"db_path"`
}

// Config represents dirindex configuration options
type Config struct {
	// SourceDirectory is the directory to index (required)
	SourceDirectory string `yaml:"source_directory"`

	// Recursive scans subdirectories
	Recursive bool `yaml:"recursive"`

	// SourceChildrenOnly leaves the source directory's own record out of the
	// index. Only has an effect when Recursive is set.
	SourceChildrenOnly bool `yaml:"source_children_only"`

	// DirnameRegex keeps only directories whose name contains a match
	DirnameRegex string `yaml:"dirname_regex"`

	// FilenameRegex keeps only files whose name contains a match
	FilenameRegex string `yaml:"filename_regex"`

	// OutputFormat is one of xml, text-name-only, text-tree, html (case-insensitive)
	OutputFormat string `yaml:"output_format"`

	// TempDirectory is where the index file is written
	TempDirectory string `yaml:"temp_directory"`

	// TargetDirectory is a subdirectory of TempDirectory; must be relative
	TargetDirectory string `yaml:"target_directory"`

	// TargetFilename is the index file name (default: dirindex + format extension)
	TargetFilename string `yaml:"target_filename"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when set
	LogDir string `yaml:"log_dir"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// Overrides uses pointer fields to distinguish unset values from zero values.
// It is used both for the config file and for CLI flags.
type Overrides struct {
	SourceDirectory    *string `yaml:"source_directory"`
	Recursive          *bool   `yaml:"recursive"`
	SourceChildrenOnly *bool   `yaml:"source_children_only"`
	DirnameRegex       *string `yaml:"dirname_regex"`
	FilenameRegex      *string `yaml:"filename_regex"`
	OutputFormat       *string `yaml:"output_format"`
	TempDirectory      *string `yaml:"temp_directory"`
	TargetDirectory    *string `yaml:"target_directory"`
	TargetFilename     *string `yaml:"target_filename"`
	LogLevel           *string `yaml:"log_level"`
	LogDir             *string `yaml:"log_dir"`
	HistoryEnabled     *bool   `yaml:"-"`
	HistoryDBPath      *string `yaml:"-"`
}

// fileConfig is the on-disk layout; the history section is nested.
type fileConfig struct {
	Overrides `yaml:",inline"`
	History   struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
	} `yaml:"history"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Recursive:          true,
		SourceChildrenOnly: false,
		OutputFormat:       string(index.DefaultFormat),
		TempDirectory:      DefaultTempDirectory,
		LogLevel:           DefaultLogLevel,
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the default configuration; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	o := fc.Overrides
	o.HistoryEnabled = fc.History.Enabled
	o.HistoryDBPath = fc.History.DBPath
	cfg.Merge(&o)

	return cfg, nil
}

// LoadConfigFromDir loads .dirindex/config.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".dirindex", "config.yaml"))
}

// Merge applies non-nil values from o. Used for file values over defaults and
// CLI flags over file values.
func (c *Config) Merge(o *Overrides) {
	if o == nil {
		return
	}
	if o.SourceDirectory != nil {
		c.SourceDirectory = *o.SourceDirectory
	}
	if o.Recursive != nil {
		c.Recursive = *o.Recursive
	}
	if o.SourceChildrenOnly != nil {
		c.SourceChildrenOnly = *o.SourceChildrenOnly
	}
	if o.DirnameRegex != nil {
		c.DirnameRegex = *o.DirnameRegex
	}
	if o.FilenameRegex != nil {
		c.FilenameRegex = *o.FilenameRegex
	}
	if o.OutputFormat != nil {
		c.OutputFormat = *o.OutputFormat
	}
	if o.TempDirectory != nil {
		c.TempDirectory = *o.TempDirectory
	}
	if o.TargetDirectory != nil {
		c.TargetDirectory = *o.TargetDirectory
	}
	if o.TargetFilename != nil {
		c.TargetFilename = *o.TargetFilename
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.HistoryEnabled != nil {
		c.History.Enabled = *o.HistoryEnabled
	}
	if o.HistoryDBPath != nil {
		c.History.DBPath = *o.HistoryDBPath
	}
}

// ResolvePaths makes relative source, temp, log and history paths absolute
// against baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	c.SourceDirectory = resolve(c.SourceDirectory)
	c.TempDirectory = resolve(c.TempDirectory)
	c.LogDir = resolve(c.LogDir)
	c.History.DBPath = resolve(c.History.DBPath)
}

// Format returns the parsed output format.
func (c *Config) Format() (index.Format, error) {
	return index.ParseFormat(c.OutputFormat)
}

// EffectiveTargetFilename returns TargetFilename, or a name derived from the
// output format when it is unset.
func (c *Config) EffectiveTargetFilename() string {
	if c.TargetFilename != "" {
		return c.TargetFilename
	}
	f, err := c.Format()
	if err != nil {
		f = index.DefaultFormat
	}
	return defaultTargetBase + index.FileExtension(f)
}

// TargetPath returns temp_directory/target_directory/target_filename.
func (c *Config) TargetPath() string {
	return filepath.Join(c.TempDirectory, c.TargetDirectory, c.EffectiveTargetFilename())
}

// HistoryDBPath returns the configured database path or the default under
// the dirindex home directory.
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	return GetHistoryDBPath()
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceDirectory) == "" {
		return fmt.Errorf("source_directory is required")
	}

	if _, err := c.Format(); err != nil {
		return fmt.Errorf("invalid output_format: %w", err)
	}

	if c.DirnameRegex != "" {
		if _, err := regexp.Compile(c.DirnameRegex); err != nil {
			return fmt.Errorf("invalid dirname_regex %q: %w", c.DirnameRegex, err)
		}
	}
	if c.FilenameRegex != "" {
		if _, err := regexp.Compile(c.FilenameRegex); err != nil {
			return fmt.Errorf("invalid filename_regex %q: %w", c.FilenameRegex, err)
		}
	}

	if c.TempDirectory == "" {
		return fmt.Errorf("temp_directory cannot be empty")
	}
	if c.TargetDirectory != "" && (filepath.IsAbs(c.TargetDirectory) || fileutil.EscapesParent(c.TargetDirectory)) {
		return fmt.Errorf("target_directory %q must be relative to temp_directory", c.TargetDirectory)
	}
	name := c.EffectiveTargetFilename()
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("target_filename %q must be a plain file name", name)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
