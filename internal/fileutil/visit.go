package fileutil

// VisitResult tells Walk whether to keep going.
type VisitResult int

const (
	// Continue proceeds with the walk.
	Continue VisitResult = iota
	// Stop ends the walk; no further callbacks are made.
	Stop
)

// Visitor receives the callbacks of a Walk.
type Visitor interface {
	// OnEnter is called before the node's children are visited.
	OnEnter(n *DirectoryNode) VisitResult
	// OnExit is called after all of the node's children were visited.
	OnExit(n *DirectoryNode) VisitResult
}

// VisitorFuncs adapts plain functions to a Visitor. Nil funcs return Continue.
type VisitorFuncs struct {
	Enter func(n *DirectoryNode) VisitResult
	Exit  func(n *DirectoryNode) VisitResult
}

// OnEnter implements Visitor.
func (v VisitorFuncs) OnEnter(n *DirectoryNode) VisitResult {
	if v.Enter == nil {
		return Continue
	}
	return v.Enter(n)
}

// OnExit implements Visitor.
func (v VisitorFuncs) OnExit(n *DirectoryNode) VisitResult {
	if v.Exit == nil {
		return Continue
	}
	return v.Exit(n)
}

// Walk visits root and its descendants depth-first, children in stored order.
// It returns Stop if a callback stopped the walk.
func Walk(root *DirectoryNode, v Visitor) VisitResult {
	if root == nil {
		return Continue
	}

	if v.OnEnter(root) == Stop {
		return Stop
	}
	for _, child := range root.Children {
		if Walk(child, v) == Stop {
			return Stop
		}
	}
	return v.OnExit(root)
}
