package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Recursive)
	assert.False(t, cfg.SourceChildrenOnly)
	assert.Equal(t, "xml", cfg.OutputFormat)
	assert.Equal(t, "build/dirindex", cfg.TempDirectory)
	assert.Equal(t, "", cfg.TargetDirectory)
	assert.Equal(t, "dirindex.xml", cfg.EffectiveTargetFilename())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, `
source_directory: src/main/resources
recursive: false
filename_regex: '\.properties$'
output_format: TEXT-NAME-ONLY
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src/main/resources", cfg.SourceDirectory)
	assert.False(t, cfg.Recursive)
	assert.Equal(t, `\.properties$`, cfg.FilenameRegex)
	assert.Equal(t, "TEXT-NAME-ONLY", cfg.OutputFormat)
	assert.False(t, cfg.History.Enabled)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultTempDirectory, cfg.TempDirectory)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "dirindex.txt", cfg.EffectiveTargetFilename())
}

func TestLoadConfig_ExplicitFalseDiffersFromAbsent(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "source_children_only: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Recursive, "absent key keeps default true")
	assert.True(t, cfg.SourceChildrenOnly)
}

func TestLoadConfig_HistoryDBPath(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "history:\n  db_path: runs/history.db\n"))
	require.NoError(t, err)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "runs/history.db", cfg.History.DBPath)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "recursive: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".dirindex"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dirindex", "config.yaml"),
		[]byte("target_filename: files.lst\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "files.lst", cfg.TargetFilename)
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DirnameRegex = "keep-me"

	cfg.Merge(&Overrides{
		SourceDirectory:    strPtr("/data"),
		Recursive:          boolPtr(false),
		SourceChildrenOnly: boolPtr(true),
		OutputFormat:       strPtr("html"),
		TargetDirectory:    strPtr("meta"),
		LogLevel:           strPtr("debug"),
		HistoryEnabled:     boolPtr(false),
	})

	assert.Equal(t, "/data", cfg.SourceDirectory)
	assert.False(t, cfg.Recursive)
	assert.True(t, cfg.SourceChildrenOnly)
	assert.Equal(t, "html", cfg.OutputFormat)
	assert.Equal(t, "meta", cfg.TargetDirectory)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "keep-me", cfg.DirnameRegex, "nil override leaves value alone")

	cfg.Merge(nil)
	assert.Equal(t, "/data", cfg.SourceDirectory)
}

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(base, "already", "absolute")

	cfg := DefaultConfig()
	cfg.SourceDirectory = "src"
	cfg.TempDirectory = abs
	cfg.LogDir = "logs"
	cfg.ResolvePaths(base)

	assert.Equal(t, filepath.Join(base, "src"), cfg.SourceDirectory)
	assert.Equal(t, abs, cfg.TempDirectory)
	assert.Equal(t, filepath.Join(base, "logs"), cfg.LogDir)
	assert.Equal(t, "", cfg.History.DBPath, "empty paths stay empty")
}

func TestTargetPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TempDirectory = "/tmp/build"
	assert.Equal(t, filepath.Join("/tmp/build", "dirindex.xml"), cfg.TargetPath())

	cfg.TargetDirectory = "META-INF"
	cfg.OutputFormat = "html"
	assert.Equal(t, filepath.Join("/tmp/build", "META-INF", "dirindex.html"), cfg.TargetPath())

	cfg.TargetFilename = "listing.txt"
	assert.Equal(t, filepath.Join("/tmp/build", "META-INF", "listing.txt"), cfg.TargetPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "format is case-insensitive", mutate: func(c *Config) { c.OutputFormat = "Text-Tree" }},
		{name: "missing source", mutate: func(c *Config) { c.SourceDirectory = " " }, wantErr: "source_directory is required"},
		{name: "unknown format", mutate: func(c *Config) { c.OutputFormat = "json" }, wantErr: "invalid output_format"},
		{name: "bad dirname regex", mutate: func(c *Config) { c.DirnameRegex = "(" }, wantErr: "invalid dirname_regex"},
		{name: "bad filename regex", mutate: func(c *Config) { c.FilenameRegex = "[" }, wantErr: "invalid filename_regex"},
		{name: "empty temp dir", mutate: func(c *Config) { c.TempDirectory = "" }, wantErr: "temp_directory cannot be empty"},
		{name: "absolute target dir", mutate: func(c *Config) { c.TargetDirectory = "/abs" }, wantErr: "must be relative"},
		{name: "target dir escaping temp dir", mutate: func(c *Config) { c.TargetDirectory = "../.." }, wantErr: "must be relative"},
		{name: "target dir climbing back inside", mutate: func(c *Config) { c.TargetDirectory = "a/../META-INF" }},
		{name: "target filename with dir", mutate: func(c *Config) { c.TargetFilename = "a/b.xml" }, wantErr: "plain file name"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "log level any case", mutate: func(c *Config) { c.LogLevel = "WARN" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SourceDirectory = "/src"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDirindexHome_EnvVar(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv(HomeEnvVar, home)

	got, err := GetDirindexHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)
	assert.DirExists(t, home)

	dbPath, err := GetHistoryDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "history.db"), dbPath)
}

func TestGetDirindexHome_DefaultsToUserCache(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(HomeEnvVar, "")
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))

	cacheDir, err := os.UserCacheDir()
	require.NoError(t, err)

	work := filepath.Join(tmp, "work")
	require.NoError(t, os.MkdirAll(work, 0755))
	// Equivalent of t.Chdir (Go 1.24+) for the Go 1.21 toolchain.
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })

	got, err := GetDirindexHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cacheDir, "dirindex"), got)
	assert.DirExists(t, got)
	assert.NoDirExists(t, filepath.Join(work, ".dirindex"))
}

func TestHistoryDBPath_ConfiguredWins(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())
	cfg := DefaultConfig()
	cfg.History.DBPath = "/var/lib/dirindex.db"

	got, err := cfg.HistoryDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/dirindex.db", got)
}
