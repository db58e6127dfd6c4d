// Package hier models named tree hierarchies: groups containing
// sub-groups and leaf datasets, each child uniquely named within its
// parent. The pattern engine (internal/pathslice) consumes hierarchies
// exclusively through the Node interface and never mutates them.
package hier

import (
	"sort"
	"strings"
)

// Node is the minimal traversal capability a hierarchy must expose.
// A node is either a group (may have children) or a dataset (leaf).
type Node interface {
	Name() string
	IsGroup() bool
	Children() map[string]Node
}

// Attributed is implemented by nodes that carry attribute values.
type Attributed interface {
	Attrs() Value
}

// Separator joins path segments. Paths are relative to the hierarchy
// root; the root itself has no segment.
const Separator = "/"

// SplitPath splits a path into its segments, ignoring empty segments
// from leading/trailing separators.
func SplitPath(path string) []string {
	parts := strings.Split(path, Separator)
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

// JoinPath is the inverse of SplitPath.
func JoinPath(segs []string) string {
	return strings.Join(segs, Separator)
}

// Lookup follows path segments literally from root.
func Lookup(root Node, path string) (Node, bool) {
	n := root
	for _, seg := range SplitPath(path) {
		child, ok := n.Children()[seg]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

// SortedChildNames returns the node's child names in lexicographic
// order. This is the canonical sibling order used by traversal.
func SortedChildNames(n Node) []string {
	children := n.Children()
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLeaf reports whether a node is a dataset or a childless group.
func IsLeaf(n Node) bool {
	return !n.IsGroup() || len(n.Children()) == 0
}

// Walk visits every node below root in depth-first order, siblings
// lexicographic by name. The root itself is not visited (it has no
// path). Returning false from fn stops the walk.
func Walk(root Node, fn func(path string, n Node) bool) {
	walkNode(root, "", fn)
}

func walkNode(n Node, prefix string, fn func(path string, n Node) bool) bool {
	children := n.Children()
	for _, name := range SortedChildNames(n) {
		child := children[name]
		path := name
		if prefix != "" {
			path = prefix + Separator + name
		}
		if !fn(path, child) {
			return false
		}
		if !walkNode(child, path, fn) {
			return false
		}
	}
	return true
}
