package index

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/xlab/treeprint"
)

// record is one AddDirectory or AddFile event.
type record struct {
	dir         bool
	name        string
	baseName    string
	size        int64
	subdirCount int
	fileCount   int
}

// TreeBuilder renders the index as a box-drawing tree with file sizes,
// followed by a totals line.
type TreeBuilder struct {
	sourceDir string
	records   []record
	hasSums   bool
	dirs      int
	files     int
}

// NewTreeBuilder returns an empty TreeBuilder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Init sets the label of the tree root.
func (b *TreeBuilder) Init(sourceDir string) {
	b.sourceDir = sourceDir
}

// AddDirectory queues a directory node. Nodes are attached to their parent
// by logical path when the tree is rendered.
func (b *TreeBuilder) AddDirectory(name, baseName string, subdirCount, fileCount int) {
	b.records = append(b.records, record{dir: true, name: name, baseName: baseName, subdirCount: subdirCount, fileCount: fileCount})
}

// AddFile queues a file leaf labelled with its human readable size.
func (b *TreeBuilder) AddFile(name, baseName string, size int64) {
	b.records = append(b.records, record{name: name, baseName: baseName, size: size})
}

// AddFinalSums sets the totals printed after the tree.
func (b *TreeBuilder) AddFinalSums(totalDirs, totalFiles int) {
	b.hasSums = true
	b.dirs = totalDirs
	b.files = totalFiles
}

// Render draws the tree followed by a "N directories, M files" line.
func (b *TreeBuilder) Render() ([]byte, error) {
	rootLabel := "."
	if b.sourceDir != "" {
		rootLabel = filepath.Base(b.sourceDir)
	}
	root := treeprint.NewWithRoot(rootLabel)

	// logical directory path -> branch; "" is the scan root
	branches := map[string]treeprint.Tree{"": root}

	for _, r := range b.records {
		parent, ok := branches[parentPath(r.name)]
		if !ok {
			parent = root
		}

		if r.dir {
			if r.name == "" {
				continue
			}
			branches[r.name] = parent.AddBranch(r.baseName + "/")
			continue
		}

		parent.AddMetaNode(humanize.Bytes(uint64(r.size)), r.baseName)
	}

	var sb strings.Builder
	sb.WriteString(root.String())
	if b.hasSums {
		sb.WriteString("\n")
		sb.WriteString(english.Plural(b.dirs, "directory", "directories"))
		sb.WriteString(", ")
		sb.WriteString(english.Plural(b.files, "file", "files"))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// parentPath returns the logical path of the directory containing name.
func parentPath(name string) string {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}
