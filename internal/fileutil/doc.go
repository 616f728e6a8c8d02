// Package fileutil scans a directory subtree into an in-memory folder tree and
// walks that tree depth-first.
//
// # Purpose
//
// The fileutil package is designed for:
//   - Building an immutable FolderTree from a single filesystem scan
//   - Filtering directories and files by base name before they enter the tree
//   - Visiting the tree in pre-order and post-order with early termination
//
// # Main Components
//
// Filter - predicate over a directory entry (os.FileInfo):
//   - NameMatches: unanchored, case-sensitive regex match on the base name
//   - RejectAll: rejects every entry (used when recursion is disabled)
//   - And: logical AND of several filters, nil members ignored
//
// A nil Filter accepts everything.
//
// FolderTree - the scanned subtree:
//   - Root: the unnamed root DirectoryNode (BaseName "")
//   - Path: the scanned directory as given by the caller
//
// DirectoryNode - one directory:
//   - Children: subdirectories in filesystem enumeration order
//   - Files: matched files, nil when there are none
//
// Walk - depth-first traversal driving a Visitor:
//   - OnEnter fires before the children, OnExit after them
//   - Returning Stop from either callback ends the walk immediately
//
// # Usage Examples
//
// Index every *.go file below ./src, skipping hidden directories:
//
//	files, _ := fileutil.NameMatches(`\.go$`)
//	dirs, _ := fileutil.NameMatches(`^[^.]`)
//	tree, err := fileutil.BuildTreeFromDisk("./src", dirs, files)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fileutil.Walk(tree.Root, fileutil.VisitorFuncs{
//	    Enter: func(n *fileutil.DirectoryNode) fileutil.VisitResult {
//	        fmt.Println(n.BaseName, n.FileCount())
//	        return fileutil.Continue
//	    },
//	})
//
// Scan only the top level:
//
//	tree, err := fileutil.BuildTreeFromDisk("./src", fileutil.RejectAll(), nil)
//
// # Error Handling
//
// Scanning is all or nothing. A missing or non-directory root returns
// ErrNotDirectory (wrapped with the path); any read failure below the root
// aborts the scan and no partial tree is returned.
//
// # Filesystem Abstraction
//
// BuildTree works on a go-billy filesystem so tests can run against memfs.
// BuildTreeFromDisk binds an osfs rooted at the scanned directory.
package fileutil
