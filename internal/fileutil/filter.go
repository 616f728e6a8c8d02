package fileutil

import (
	"fmt"
	"os"
	"regexp"
)

// Filter decides whether a directory entry is kept during a scan.
// A nil Filter accepts every entry.
type Filter func(fi os.FileInfo) bool

// Accepts reports whether fi passes the filter. It is safe to call on a nil Filter.
func (f Filter) Accepts(fi os.FileInfo) bool {
	if f == nil {
		return true
	}
	return f(fi)
}

// NameMatches returns a Filter that keeps entries whose base name contains a
// match for pattern. The match is not anchored and is case-sensitive.
func NameMatches(pattern string) (Filter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return func(fi os.FileInfo) bool {
		return re.MatchString(fi.Name())
	}, nil
}

// RejectAll returns a Filter that rejects every entry.
func RejectAll() Filter {
	return func(os.FileInfo) bool { return false }
}

// And combines filters with logical AND. Nil filters are skipped; if every
// filter is nil the result is nil (accept everything).
func And(filters ...Filter) Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(fi os.FileInfo) bool {
		for _, f := range active {
			if !f(fi) {
				return false
			}
		}
		return true
	}
}
