package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// FileEntry is a matched file inside a DirectoryNode.
type FileEntry struct {
	Name string // base filename
	Size int64  // byte length at scan time
}

// DirectoryNode is one directory of a FolderTree.
// Nodes are fully populated by BuildTree and never modified afterwards.
type DirectoryNode struct {
	// BaseName is the directory's own name. It is empty for the tree root.
	BaseName string
	// Children holds accepted subdirectories in enumeration order.
	Children []*DirectoryNode
	// Files holds accepted files in enumeration order; nil when there are none.
	Files []FileEntry
}

// SubdirCount returns the number of immediate subdirectories.
func (n *DirectoryNode) SubdirCount() int {
	return len(n.Children)
}

// FileCount returns the number of immediate files.
func (n *DirectoryNode) FileCount() int {
	return len(n.Files)
}

// SortedFiles returns a copy of Files ordered by name.
func (n *DirectoryNode) SortedFiles() []FileEntry {
	if n.Files == nil {
		return nil
	}
	sorted := make([]FileEntry, len(n.Files))
	copy(sorted, n.Files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// FolderTree is the result of one scan.
type FolderTree struct {
	Root *DirectoryNode
	Path string
}

// Stats counts every directory (root included) and every file in the tree.
func (t *FolderTree) Stats() (dirs, files int) {
	Walk(t.Root, VisitorFuncs{
		Enter: func(n *DirectoryNode) VisitResult {
			dirs++
			files += n.FileCount()
			return Continue
		},
	})
	return dirs, files
}

// BuildTree scans root on fsys. Subdirectories rejected by dirFilter are left
// out together with everything below them; files rejected by fileFilter are
// left out of their directory. Any read error aborts the scan.
func BuildTree(fsys billy.Filesystem, root string, dirFilter, fileFilter Filter) (*FolderTree, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	s := &treeScanner{fs: fsys, dirFilter: dirFilter, fileFilter: fileFilter}
	rootNode := &DirectoryNode{}
	if err := s.fill(rootNode, root); err != nil {
		return nil, err
	}

	return &FolderTree{Root: rootNode, Path: root}, nil
}

// BuildTreeFromDisk scans a directory of the local filesystem.
func BuildTreeFromDisk(root string, dirFilter, fileFilter Filter) (*FolderTree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	tree, err := BuildTree(osfs.New(abs), ".", dirFilter, fileFilter)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	tree.Path = root
	return tree, nil
}

type treeScanner struct {
	fs         billy.Filesystem
	dirFilter  Filter
	fileFilter Filter
}

func (s *treeScanner) fill(node *DirectoryNode, dir string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := s.fs.Join(dir, entry.Name())

		fi := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					// dangling link
					continue
				}
				return fmt.Errorf("failed to resolve link %s: %w", path, err)
			}
			fi = target
		}

		switch {
		case fi.IsDir():
			if !s.dirFilter.Accepts(entry) {
				continue
			}
			child := &DirectoryNode{BaseName: entry.Name()}
			if err := s.fill(child, path); err != nil {
				return err
			}
			node.Children = append(node.Children, child)
		case fi.Mode().IsRegular():
			if !s.fileFilter.Accepts(entry) {
				continue
			}
			node.Files = append(node.Files, FileEntry{Name: entry.Name(), Size: fi.Size()})
		}
	}

	return nil
}
