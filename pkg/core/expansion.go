package core

import "sync"

// Expansion is the transient open/closed state of a tree view, keyed by RowKey.
// Nodes without an explicit state are expanded at depth 0 and collapsed below.
// It is view state only: it is never loaded, journaled or persisted, and may be
// reset at any time.
type Expansion struct {
	mu        sync.Mutex
	overrides map[string]bool
}

// NewExpansion returns an expansion state with every node at its default.
func NewExpansion() *Expansion {
	return &Expansion{overrides: make(map[string]bool)}
}

// RowKey identifies n within its tree. A node with an id is keyed by it. Form
// components are often identified by name only, so they are keyed by the names
// along their path below the nearest ancestor key; parentKey is "" for roots.
func RowKey(parentKey string, n *Node) string {
	if n.ID != "" {
		return n.ID
	}
	return parentKey + "/" + n.Name
}

// IsExpanded reports whether the children of the node keyed key are visible.
// A nil Expansion reports the defaults.
func (e *Expansion) IsExpanded(key string, depth int) bool {
	if e == nil {
		return depth == 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.overrides[key]; ok {
		return v
	}
	return depth == 0
}

// Set forces the state of the node keyed key.
func (e *Expansion) Set(key string, expanded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overrides[key] = expanded
}

// Toggle flips the state of the node keyed key and returns the new state.
func (e *Expansion) Toggle(key string, depth int) bool {
	next := !e.IsExpanded(key, depth)
	e.Set(key, next)
	return next
}

// ExpandAll opens every node of the forest.
func (e *Expansion) ExpandAll(roots []*Node) {
	e.setAll(roots, true)
}

// CollapseAll closes every node of the forest, roots included.
func (e *Expansion) CollapseAll(roots []*Node) {
	e.setAll(roots, false)
}

func (e *Expansion) setAll(roots []*Node, expanded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	walkKeyed(roots, "", 0, func(_ *Node, key string, _ int) bool {
		e.overrides[key] = expanded
		return true
	})
}

// Reset drops every explicit state.
func (e *Expansion) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overrides = make(map[string]bool)
}

func walkKeyed(nodes []*Node, parentKey string, depth int, fn func(n *Node, key string, depth int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		key := RowKey(parentKey, n)
		if fn(n, key, depth) {
			walkKeyed(n.Children, key, depth+1, fn)
		}
	}
}
