package indexer

import (
	"fmt"
	"strings"

	"github.com/harrison/dirindex/internal/fileutil"
	"github.com/harrison/dirindex/internal/index"
)

// Totals holds the final counts of one traversal.
type Totals struct {
	Dirs  int // directory records emitted
	Files int // file records emitted, suppressed root included
}

// BuildFilters returns the directory and file filters for a scan.
// Without recursion every subdirectory is rejected. Empty patterns match everything.
func BuildFilters(recursive bool, dirnamePattern, filenamePattern string) (dirFilter, fileFilter fileutil.Filter, err error) {
	var recursion, dirName fileutil.Filter
	if !recursive {
		recursion = fileutil.RejectAll()
	}
	if dirnamePattern != "" {
		dirName, err = fileutil.NameMatches(dirnamePattern)
		if err != nil {
			return nil, nil, fmt.Errorf("directory name filter: %w", err)
		}
	}
	if filenamePattern != "" {
		fileFilter, err = fileutil.NameMatches(filenamePattern)
		if err != nil {
			return nil, nil, fmt.Errorf("file name filter: %w", err)
		}
	}
	return fileutil.And(recursion, dirName), fileFilter, nil
}

// traversal carries the path stacks and running totals of one Assemble call.
//
// absolute holds one frame per entered directory. logical holds one frame per
// emitted directory, so it is shorter than absolute by one while the root is
// suppressed.
type traversal struct {
	builder      index.Builder
	suppressRoot bool
	absolute     []string
	logical      []string
	totals       Totals
}

func (t *traversal) suppressed() bool {
	return t.suppressRoot && len(t.absolute) == 1
}

// logicalPath joins the logical frames, skipping the unnamed root.
func (t *traversal) logicalPath() string {
	parts := make([]string, 0, len(t.logical))
	for _, frame := range t.logical {
		if frame != "" {
			parts = append(parts, frame)
		}
	}
	return strings.Join(parts, "/")
}

// OnEnter implements fileutil.Visitor.
func (t *traversal) OnEnter(n *fileutil.DirectoryNode) fileutil.VisitResult {
	t.absolute = append(t.absolute, n.BaseName)

	if !t.suppressed() {
		t.logical = append(t.logical, n.BaseName)
		t.builder.AddDirectory(t.logicalPath(), n.BaseName, n.SubdirCount(), n.FileCount())
		t.totals.Dirs++
	}

	dir := t.logicalPath()
	for _, f := range n.SortedFiles() {
		name := f.Name
		if dir != "" {
			name = dir + "/" + f.Name
		}
		t.builder.AddFile(name, f.Name, f.Size)
	}
	t.totals.Files += n.FileCount()

	return fileutil.Continue
}

// OnExit implements fileutil.Visitor.
func (t *traversal) OnExit(n *fileutil.DirectoryNode) fileutil.VisitResult {
	if !t.suppressed() {
		t.logical = t.logical[:len(t.logical)-1]
	}
	t.absolute = t.absolute[:len(t.absolute)-1]
	return fileutil.Continue
}

// Assemble walks tree and feeds its records to b. The root directory record is
// left out when opts.Recursive and opts.ChildrenOnly are both set; its files
// are still listed.
func Assemble(tree *fileutil.FolderTree, opts Options, b index.Builder) (Totals, error) {
	if tree == nil || tree.Root == nil {
		return Totals{}, fmt.Errorf("nothing to assemble: empty folder tree")
	}

	t := &traversal{
		builder:      b,
		suppressRoot: opts.Recursive && opts.ChildrenOnly,
	}

	b.Init(tree.Path)
	fileutil.Walk(tree.Root, t)

	if len(t.absolute) != 0 || len(t.logical) != 0 {
		return t.totals, fmt.Errorf("unbalanced path stacks after traversal: absolute=%d logical=%d",
			len(t.absolute), len(t.logical))
	}

	b.AddFinalSums(t.totals.Dirs, t.totals.Files)
	return t.totals, nil
}
