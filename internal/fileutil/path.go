package fileutil

import (
	"path/filepath"
	"strings"
)

// EscapesParent reports whether the relative path rel, once cleaned, points
// outside the directory it is joined to.
func EscapesParent(rel string) bool {
	cleaned := filepath.Clean(rel)
	return cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator))
}
