package core

// Index resolves weak references inside one forest.
// It holds no ownership: rebuilding it after a reload is the only way to refresh it,
// so a stale index can miss names but never dangle.
type Index struct {
	byName map[string]*Node
	byID   map[string]*Node
}

// NewIndex indexes every node of the forest. When names repeat, the first one in
// depth-first order wins.
func NewIndex(roots []*Node) *Index {
	idx := &Index{
		byName: make(map[string]*Node),
		byID:   make(map[string]*Node),
	}
	Walk(roots, func(n *Node, _ int) bool {
		if _, ok := idx.byName[n.Name]; !ok {
			idx.byName[n.Name] = n
		}
		if n.ID != "" {
			if _, ok := idx.byID[n.ID]; !ok {
				idx.byID[n.ID] = n
			}
		}
		return true
	})
	return idx
}

// Lookup finds a node by id.
func (i *Index) Lookup(id string) (*Node, bool) {
	n, ok := i.byID[id]
	return n, ok
}

// ByName finds a node by its exact name.
func (i *Index) ByName(name string) (*Node, bool) {
	n, ok := i.byName[name]
	return n, ok
}

// Parent resolves the weak parent label of n.
func (i *Index) Parent(n *Node) (*Node, bool) {
	if n == nil || n.Parent == "" {
		return nil, false
	}
	p, ok := i.byName[n.Parent]
	return p, ok
}

// IsRootEquivalent reports whether n should be shown as a top-level entry of the
// inheritance view: it has no parent label, or the label does not resolve.
func (i *Index) IsRootEquivalent(n *Node) bool {
	_, ok := i.Parent(n)
	return !ok
}

// Ancestry follows weak parent labels from n upwards, n excluded.
// It stops at the first unresolved label or when a name repeats.
func (i *Index) Ancestry(n *Node) []*Node {
	chain := []*Node{}
	seen := map[*Node]bool{n: true}
	for cur := n; ; {
		p, ok := i.Parent(cur)
		if !ok || seen[p] {
			return chain
		}
		seen[p] = true
		chain = append(chain, p)
		cur = p
	}
}
