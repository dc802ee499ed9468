package core

import "slices"

// Modifier is the keyboard state accompanying a row click.
type Modifier int

const (
	// ModifierNone replaces the selection with the clicked row.
	ModifierNone Modifier = iota
	// ModifierToggle (ctrl/cmd) adds or removes the clicked row.
	ModifierToggle
	// ModifierRange (shift) extends from the anchor to the clicked row.
	ModifierRange
)

// RowSelection is a multi-row selection over a flat list.
//
// The anchor is tracked explicitly as the most recently added id; it is never inferred
// from the set, whose iteration order is meaningless.
type RowSelection struct {
	ids       map[string]struct{}
	anchor    string
	hasAnchor bool
}

// NewRowSelection returns an empty selection.
func NewRowSelection() *RowSelection {
	return &RowSelection{ids: make(map[string]struct{})}
}

// Click applies a row click. order is the currently displayed (filtered) row order.
func (s *RowSelection) Click(id string, mod Modifier, order []string) {
	switch mod {
	case ModifierToggle:
		s.Toggle(id)
	case ModifierRange:
		s.Extend(id, order)
	default:
		s.Replace(id)
	}
}

// Replace makes id the only selected row and the new anchor.
func (s *RowSelection) Replace(id string) {
	s.ids = map[string]struct{}{id: {}}
	s.anchor, s.hasAnchor = id, true
}

// Toggle adds or removes id. Adding moves the anchor to id; removing the anchor
// leaves the selection without one.
func (s *RowSelection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		if s.hasAnchor && s.anchor == id {
			s.anchor, s.hasAnchor = "", false
		}
		return
	}
	s.ids[id] = struct{}{}
	s.anchor, s.hasAnchor = id, true
}

// Extend adds every row between the anchor and id, inclusive, by position in order.
// Without an anchor, or when either end is not displayed, it behaves like Replace.
// The anchor stays put so successive range clicks pivot on the same row.
func (s *RowSelection) Extend(id string, order []string) {
	if !s.hasAnchor || len(s.ids) == 0 {
		s.Replace(id)
		return
	}
	from := slices.Index(order, s.anchor)
	to := slices.Index(order, id)
	if from < 0 || to < 0 {
		s.Replace(id)
		return
	}
	if from > to {
		from, to = to, from
	}
	for _, rowID := range order[from : to+1] {
		s.ids[rowID] = struct{}{}
	}
}

// Clear empties the selection and drops the anchor.
func (s *RowSelection) Clear() {
	s.ids = make(map[string]struct{})
	s.anchor, s.hasAnchor = "", false
}

// Has reports whether id is selected.
func (s *RowSelection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected rows.
func (s *RowSelection) Len() int { return len(s.ids) }

// Anchor returns the current range anchor.
func (s *RowSelection) Anchor() (string, bool) { return s.anchor, s.hasAnchor }

// IDs returns the selected ids that appear in order, in that order.
func (s *RowSelection) IDs(order []string) []string {
	out := []string{}
	for _, id := range order {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
