package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the dirindex home directory.
const HomeEnvVar = "DIRINDEX_HOME"

// GetDirindexHome returns the dirindex home directory
// Priority order:
//  1. DIRINDEX_HOME environment variable (if set)
//  2. dirindex under the user cache directory
//
// The default lives outside the working directory so that indexing the
// working directory does not pick up the history database.
//
// The directory is created if it doesn't exist
func GetDirindexHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create dirindex home directory: %w", err)
		}
		return home, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache directory: %w", err)
	}

	home := filepath.Join(cacheDir, "dirindex")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create dirindex home directory: %w", err)
	}

	return home, nil
}

// GetHistoryDBPath returns the default path of the run history database
// Always returns: $DIRINDEX_HOME/history.db
func GetHistoryDBPath() (string, error) {
	home, err := GetDirindexHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, "history.db"), nil
}
