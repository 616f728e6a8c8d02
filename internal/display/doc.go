// Package display formats user-facing warnings for the dirindex CLI.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Children-only mode has no effect",
//	    Message:    "source_children_only is ignored when recursive is false",
//	    Suggestion: "Enable recursive or drop source_children_only",
//	}
//	warning.Display(os.Stderr)
//
// CheckOptions returns the warnings for a set of run options:
//
//	for _, w := range display.CheckOptions(opts) {
//	    w.Display(cmd.ErrOrStderr())
//	}
//
// Colors are only emitted when the writer is a terminal.
package display
