// Package versions reconstructs parent-linked immutable version chains.
//
// Rows are never edited in place: an edit inserts a child of the version it was
// made from. Two edits from the same parent fork the chain, and the most
// recently created row is the latest regardless of branch.
package versions

import (
	"slices"
	"time"
)

// Versioned is implemented by rows that belong to a version chain.
type Versioned interface {
	VersionID() string
	ParentVersionID() *string
	CreatedTime() time.Time
}

// Node is one version in a forest, with the versions derived from it.
type Node[T Versioned] struct {
	Item     T          `json:"item"`
	Children []*Node[T] `json:"children"`
}

// BuildForest arranges items into trees. An item whose parent is nil or not in
// items becomes a root. Roots and children keep the order of items.
func BuildForest[T Versioned](items []T) []*Node[T] {
	nodes := make(map[string]*Node[T], len(items))
	for _, item := range items {
		nodes[item.VersionID()] = &Node[T]{Item: item, Children: []*Node[T]{}}
	}

	roots := []*Node[T]{}
	for _, item := range items {
		node := nodes[item.VersionID()]
		parentID := item.ParentVersionID()
		if parentID != nil && *parentID != item.VersionID() {
			if parent, ok := nodes[*parentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Latest returns the most recently created item. Ties go to the later position
// in items. ok is false when items is empty.
func Latest[T Versioned](items []T) (latest T, ok bool) {
	for _, item := range items {
		if !ok || !item.CreatedTime().Before(latest.CreatedTime()) {
			latest, ok = item, true
		}
	}
	return latest, ok
}

// Ancestry walks parent links from id back to its root and returns the path
// root first. Cycles and missing parents end the walk.
func Ancestry[T Versioned](items []T, id string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[item.VersionID()] = item
	}

	path := []T{}
	seen := map[string]bool{}
	for cur, ok := byID[id]; ok && !seen[cur.VersionID()]; {
		seen[cur.VersionID()] = true
		path = append(path, cur)
		parentID := cur.ParentVersionID()
		if parentID == nil {
			break
		}
		cur, ok = byID[*parentID]
	}
	slices.Reverse(path)
	return path
}

// Depth returns the number of nodes in the deepest branch of the forest.
func Depth[T Versioned](roots []*Node[T]) int {
	deepest := 0
	for _, root := range roots {
		deepest = max(deepest, 1+Depth(root.Children))
	}
	return deepest
}
