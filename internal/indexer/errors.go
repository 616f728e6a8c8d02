package indexer

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies where a run failed.
type Kind int

const (
	// KindConfig is a problem with the run options, found before scanning.
	KindConfig Kind = iota
	// KindScan is a filesystem failure while building the folder tree.
	KindScan
	// KindRender is a failure while encoding the index.
	KindRender
	// KindWrite is a failure while writing the index file.
	KindWrite
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScan:
		return "scan"
	case KindRender:
		return "render"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Error is returned by Generate. Path names the file or directory involved.
type Error struct {
	Kind    Kind   // Phase that failed
	Path    string // Offending path (optional)
	Message string // Human-readable error message
	Err     error  // Underlying error (optional)
}

func newError(kind Kind, path, msg string, err error) *Error {
	return &Error{Kind: kind, Path: path, Message: msg, Err: err}
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s error: %s", e.Kind, e.Message))
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Path))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *Error) Unwrap() error {
	return e.Err
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool { return isKind(err, KindConfig) }

// IsScanError reports whether err is a scan error.
func IsScanError(err error) bool { return isKind(err, KindScan) }

// IsRenderError reports whether err is a render error.
func IsRenderError(err error) bool { return isKind(err, KindRender) }

// IsWriteError reports whether err is a write error.
func IsWriteError(err error) bool { return isKind(err, KindWrite) }
