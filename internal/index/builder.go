// Package index renders directory index records into output encodings.
//
// A Builder receives the same sequence of events regardless of its encoding:
// Init once, then AddDirectory and AddFile in traversal order, then
// AddFinalSums once, then Render.
package index

import (
	"errors"
	"fmt"
	"strings"
)

// GeneratedNotice is embedded by encodings that support comments.
const GeneratedNotice = "This file was generated by dirindex. Do not edit."

// ErrUnsupportedFormat is returned for unknown output format names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output encoding.
type Format string

const (
	FormatXML          Format = "xml"
	FormatTextNameOnly Format = "text-name-only"
	FormatTextTree     Format = "text-tree"
	FormatHTML         Format = "html"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatXML

var formats = []Format{FormatXML, FormatTextNameOnly, FormatTextTree, FormatHTML}

// Formats returns the supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat matches name case-insensitively against the supported formats.
func ParseFormat(name string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, f := range formats {
		if string(f) == normalized {
			return f, nil
		}
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("%w %q, must be one of: %s", ErrUnsupportedFormat, name, strings.Join(names, ", "))
}

// Builder accumulates index records and renders them.
type Builder interface {
	// Init records the canonical path of the indexed directory.
	Init(sourceDir string)
	// AddDirectory records a directory by logical path and base name.
	AddDirectory(name, baseName string, subdirCount, fileCount int)
	// AddFile records a file by logical path and base name.
	AddFile(name, baseName string, size int64)
	// AddFinalSums records the totals after traversal.
	AddFinalSums(totalDirs, totalFiles int)
	// Render returns the UTF-8 encoded document.
	Render() ([]byte, error)
}

// NewBuilder returns an empty Builder for the format.
func NewBuilder(f Format) (Builder, error) {
	switch f {
	case FormatXML:
		return NewXMLBuilder(), nil
	case FormatTextNameOnly:
		return NewTextBuilder(), nil
	case FormatTextTree:
		return NewTreeBuilder(), nil
	case FormatHTML:
		return NewHTMLBuilder(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, string(f))
	}
}

// FileExtension returns the conventional extension for files of format f.
func FileExtension(f Format) string {
	switch f {
	case FormatXML:
		return ".xml"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}
