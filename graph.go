package refframe

import (
	"fmt"
)

// NodeID is the integer identifier of a node in an axes or points graph,
// analogous to a NAIF/SPICE ID for the point/axes system this engine
// generalizes.
type NodeID int64

// mappedGraph is a rooted tree of named nodes with O(depth) path-to-root
// lookups. Grounded on the frame-tree construction in
// _examples/other_examples/viamrobotics-rdk__Frame.go, which builds a robot
// kinematic tree the same way: nodes registered with a parent reference,
// paths resolved by walking to a common ancestor.
//
// This intentionally does not build on gonum.org/v1/gonum/graph/simple plus
// graph/traverse.BreadthFirst: every edge here is directed parent->child
// (SetEdge would run the same direction gonum's own DirectedGraph expects),
// so a forward BFS from src can only reach descendants of src, never its
// ancestors — it cannot find a common ancestor with dst without also
// maintaining a reverse adjacency the tree structure doesn't otherwise
// need. Parent-chain ascent (pathToRoot/commonPath below) visits exactly
// the nodes a bidirectional BFS would, in O(depth) with a plain map, so
// there is no traversal-package call this rooted-tree shape would actually
// exercise.
type mappedGraph struct {
	byID    map[NodeID]struct{}
	byName  map[string]NodeID
	parent  map[NodeID]NodeID
	hasRoot map[NodeID]bool // true for the single root node (no parent)
}

func newMappedGraph() *mappedGraph {
	return &mappedGraph{
		byID:    make(map[NodeID]struct{}),
		byName:  make(map[string]NodeID),
		parent:  make(map[NodeID]NodeID),
		hasRoot: make(map[NodeID]bool),
	}
}

func (mg *mappedGraph) addRoot(id NodeID, name string) error {
	if _, dup := mg.byID[id]; dup {
		return fmt.Errorf("node %d: %w", id, ErrDuplicateID)
	}
	if _, dup := mg.byName[name]; dup {
		return fmt.Errorf("node %q: %w", name, ErrDuplicateName)
	}
	mg.byID[id] = struct{}{}
	mg.byName[name] = id
	mg.hasRoot[id] = true
	return nil
}

func (mg *mappedGraph) addChild(id NodeID, name string, parentID NodeID) error {
	if _, dup := mg.byID[id]; dup {
		return fmt.Errorf("node %d: %w", id, ErrDuplicateID)
	}
	if _, dup := mg.byName[name]; dup {
		return fmt.Errorf("node %q: %w", name, ErrDuplicateName)
	}
	if _, ok := mg.byID[parentID]; !ok {
		return fmt.Errorf("node %d parent %d: %w", id, parentID, ErrUnknownParent)
	}
	mg.byID[id] = struct{}{}
	mg.byName[name] = id
	mg.parent[id] = parentID
	return nil
}

func (mg *mappedGraph) exists(id NodeID) bool {
	_, ok := mg.byID[id]
	return ok
}

func (mg *mappedGraph) lookup(name string) (NodeID, bool) {
	id, ok := mg.byName[name]
	return id, ok
}

// pathToRoot returns the chain [id, parent(id), ..., root], root last.
func (mg *mappedGraph) pathToRoot(id NodeID) []NodeID {
	path := []NodeID{id}
	cur := id
	for {
		p, ok := mg.parent[cur]
		if !ok {
			return path
		}
		path = append(path, p)
		cur = p
	}
}

// commonPath returns the two ascent chains from src and dst up to (and
// including) their lowest common ancestor: srcUp = [src, ..., lca],
// dstUp = [dst, ..., lca]. Both a src-to-lca and dst-to-lca chain always
// exist and share exactly one root in a tree with a single root node.
func (mg *mappedGraph) commonPath(src, dst NodeID) (srcUp, dstUp []NodeID, err error) {
	if !mg.exists(src) {
		return nil, nil, fmt.Errorf("node %d: %w", src, ErrUnknownNode)
	}
	if !mg.exists(dst) {
		return nil, nil, fmt.Errorf("node %d: %w", dst, ErrUnknownNode)
	}
	srcChain := mg.pathToRoot(src)
	dstChain := mg.pathToRoot(dst)
	depth := make(map[NodeID]int, len(dstChain))
	for i, n := range dstChain {
		depth[n] = i
	}
	for i, n := range srcChain {
		if j, ok := depth[n]; ok {
			return srcChain[:i+1], dstChain[:j+1], nil
		}
	}
	return nil, nil, fmt.Errorf("no shared ancestor between %d and %d: %w", src, dst, ErrUnknownNode)
}
