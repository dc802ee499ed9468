package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Binding is how a class method is dispatched.
type Binding string

const (
	BindingVirtual Binding = "virtual"
	BindingDynamic Binding = "dynamic"
	BindingMessage Binding = "message"
)

// Method is an entry of a class VMT.
type Method struct {
	Address string  `json:"address" yaml:"address"`
	Name    string  `json:"name" yaml:"name"`
	Binding Binding `json:"type" yaml:"type"`
}

// Node is the shared shape of class/VMT nodes and form components.
//
// Children are exclusively owned: a node is never reachable twice from the same roots.
// Parent is a weak reference by name, resolved through an Index at read time.
// Nodes handed out by the store are read-only; Filter and Branch build new nodes
// instead of mutating existing ones.
type Node struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Kind       string         `json:"type,omitempty" yaml:"type,omitempty"`
	Name       string         `json:"name" yaml:"name"`
	Address    string         `json:"address,omitempty" yaml:"address,omitempty"`
	Parent     string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Methods    []Method       `json:"methods,omitempty" yaml:"methods,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []*Node        `json:"children" yaml:"children"`
}

// Property returns the textual form of a component property.
func (n *Node) Property(key string) (string, bool) {
	v, ok := n.Properties[key]
	if !ok || v == nil {
		return "", ok
	}
	return fmt.Sprint(v), true
}

// Matches reports whether the node name contains query, ignoring case.
// An empty query matches nothing, so no row is highlighted without a search.
func Matches(n *Node, query string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(n.Name), strings.ToLower(query))
}

// Filter keeps the nodes whose name contains query (case-insensitive) together with
// every ancestor needed to reach them. Children of a kept node are replaced by their
// own filtered subset, so non-matching branches are pruned even under a match.
// An empty query returns roots unchanged. The source tree is never modified.
func Filter(roots []*Node, query string) []*Node {
	if query == "" {
		return roots
	}
	return filterNodes(roots, strings.ToLower(query))
}

func filterNodes(nodes []*Node, lowered string) []*Node {
	out := []*Node{}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		children := filterNodes(n.Children, lowered)
		if !strings.Contains(strings.ToLower(n.Name), lowered) && len(children) == 0 {
			continue
		}
		cp := *n
		cp.Children = children
		out = append(out, &cp)
	}
	return out
}

// WalkFunc is called for every node in depth-first pre-order.
// Returning false skips the node's children.
type WalkFunc func(n *Node, depth int) bool

// Walk visits the forest depth-first.
func Walk(roots []*Node, fn WalkFunc) {
	walk(roots, 0, fn)
}

func walk(nodes []*Node, depth int, fn WalkFunc) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// FindByID returns the first node with the given id.
func FindByID(roots []*Node, id string) (*Node, bool) {
	return find(roots, func(n *Node) bool { return n.ID == id })
}

// FindByName returns the first node with the given name (exact match).
func FindByName(roots []*Node, name string) (*Node, bool) {
	return find(roots, func(n *Node) bool { return n.Name == name })
}

func find(roots []*Node, pred func(*Node) bool) (*Node, bool) {
	var found *Node
	Walk(roots, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// PathTo returns the chain of nodes from a root down to the node with the given id.
func PathTo(roots []*Node, id string) ([]*Node, bool) {
	for _, n := range roots {
		if n == nil {
			continue
		}
		if n.ID == id {
			return []*Node{n}, true
		}
		if rest, ok := PathTo(n.Children, id); ok {
			return append([]*Node{n}, rest...), true
		}
	}
	return nil, false
}

// Branch returns a new forest holding only the path from a root to the node with the
// given id, with that node's subtree intact. Unknown ids yield an empty forest.
func Branch(roots []*Node, id string) []*Node {
	path, ok := PathTo(roots, id)
	if !ok {
		return []*Node{}
	}
	// path[len-1] keeps its own children; ancestors keep only the next step.
	child := path[len(path)-1]
	for i := len(path) - 2; i >= 0; i-- {
		cp := *path[i]
		cp.Children = []*Node{child}
		child = &cp
	}
	return []*Node{child}
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	Walk(roots, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// CloneTree deep-copies n and its descendants. Property values are copied shallowly.
func CloneTree(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Methods = slices.Clone(n.Methods)
	if n.Properties != nil {
		cp.Properties = maps.Clone(n.Properties)
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = CloneTree(c)
		}
	}
	return &cp
}

// Row is a visible line of a flattened tree. Key is the node's RowKey.
type Row struct {
	Node  *Node
	Depth int
	Key   string
}

// Flatten lists the rows a tree view displays: every root plus the children of expanded nodes.
func Flatten(roots []*Node, exp *Expansion) []Row {
	rows := []Row{}
	walkKeyed(roots, "", 0, func(n *Node, key string, depth int) bool {
		rows = append(rows, Row{Node: n, Depth: depth, Key: key})
		return exp.IsExpanded(key, depth)
	})
	return rows
}
