package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/dirindex/internal/config"
	"github.com/harrison/dirindex/internal/index"
	"github.com/harrison/dirindex/internal/indexer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addConfigFlags adds the flags that locate the configuration file.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (default: <base-dir>/.dirindex/config.yaml)")
	fs.String("base-dir", "", "Directory that relative paths are resolved against (default: current directory)")
}

// addIndexFlags adds the flags shared by generate and validate.
func addIndexFlags(fs *pflag.FlagSet) {
	addConfigFlags(fs)
	fs.Bool("recursive", true, "Scan subdirectories")
	fs.Bool("no-recursive", false, "Only index the source directory itself (overrides config)")
	fs.Bool("children-only", false, "Leave the source directory's own record out of the index")
	fs.String("dirname-regex", "", "Only descend into directories whose name matches")
	fs.String("filename-regex", "", "Only index files whose name matches")
	fs.StringP("format", "f", "", fmt.Sprintf("Output format: %s (default: %s)", formatNames(), index.DefaultFormat))
	fs.String("temp-dir", "", fmt.Sprintf("Output directory (default: %s)", config.DefaultTempDirectory))
	fs.String("target-dir", "", "Subdirectory of the output directory, must be relative")
	fs.String("target-filename", "", "Index file name (default: dirindex + format extension)")
	fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	fs.String("log-dir", "", "Directory for per-run log files")
}

func formatNames() string {
	formats := index.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// baseDir returns the absolute --base-dir, or the working directory.
func baseDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("base-dir")
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// loadConfigFile loads the config file chosen by --config / --base-dir
// without applying any other flags.
func loadConfigFile(cmd *cobra.Command) (*config.Config, string, error) {
	base, err := baseDir(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(base)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, base, nil
}

// flagOverrides collects the flags the user actually set.
func flagOverrides(cmd *cobra.Command, args []string) (*config.Overrides, error) {
	flags := cmd.Flags()
	o := &config.Overrides{}

	if flags.Changed("recursive") && flags.Changed("no-recursive") {
		return nil, fmt.Errorf("cannot use both --recursive and --no-recursive")
	}

	if len(args) > 0 {
		// positional source is relative to the working directory, not base-dir
		src, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to resolve source directory: %w", err)
		}
		o.SourceDirectory = &src
	}

	if flags.Changed("recursive") {
		v, _ := flags.GetBool("recursive")
		o.Recursive = &v
	} else if flags.Changed("no-recursive") {
		v, _ := flags.GetBool("no-recursive")
		v = !v
		o.Recursive = &v
	}
	if flags.Changed("children-only") {
		v, _ := flags.GetBool("children-only")
		o.SourceChildrenOnly = &v
	}

	stringFlags := map[string]**string{
		"dirname-regex":   &o.DirnameRegex,
		"filename-regex":  &o.FilenameRegex,
		"format":          &o.OutputFormat,
		"temp-dir":        &o.TempDirectory,
		"target-dir":      &o.TargetDirectory,
		"target-filename": &o.TargetFilename,
		"log-level":       &o.LogLevel,
		"log-dir":         &o.LogDir,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = &v
		}
	}

	if flags.Lookup("no-history") != nil && flags.Changed("no-history") {
		v, _ := flags.GetBool("no-history")
		v = !v
		o.HistoryEnabled = &v
	}

	return o, nil
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags. Relative paths are resolved against the base directory.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, base, err := loadConfigFile(cmd)
	if err != nil {
		return nil, err
	}

	overrides, err := flagOverrides(cmd, args)
	if err != nil {
		return nil, err
	}
	cfg.Merge(overrides)
	cfg.ResolvePaths(base)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// indexOptions maps a validated configuration onto run options.
func indexOptions(cfg *config.Config) indexer.Options {
	return indexer.Options{
		SourceDir:       cfg.SourceDirectory,
		Recursive:       cfg.Recursive,
		ChildrenOnly:    cfg.SourceChildrenOnly,
		DirnamePattern:  cfg.DirnameRegex,
		FilenamePattern: cfg.FilenameRegex,
		Format:          cfg.OutputFormat,
		TempDir:         cfg.TempDirectory,
		TargetDir:       cfg.TargetDirectory,
		TargetFilename:  cfg.EffectiveTargetFilename(),
	}
}
