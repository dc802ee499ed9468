package typed

import (
	"strings"

	"github.com/aretw0/idr/pkg/core"
)

// Matcher reports whether an artifact satisfies a query that is already lower-cased.
type Matcher[T core.Record] func(item T, lowered string) bool

// View is a type-safe, filterable read model over one artifact collection of a session.
// It holds no copy of the data: every call reads the session's current collections.
type View[T core.Record] struct {
	session *core.Session
	list    func(st *core.Store) []T
	match   Matcher[T]
}

// NewView builds a view from a collection accessor and a matcher.
// A nil matcher searches the record name and address.
func NewView[T core.Record](session *core.Session, list func(st *core.Store) []T, match Matcher[T]) *View[T] {
	if match == nil {
		match = func(item T, q string) bool {
			return ContainsFold(q, item.RecordName(), item.RecordAddress())
		}
	}
	return &View[T]{session: session, list: list, match: match}
}

// All returns the whole collection in payload order.
func (v *View[T]) All() []T {
	var items []T
	v.session.Read(func(st *core.Store) {
		items = v.list(st)
	})
	return items
}

// Filter returns the items matching query, case-insensitively. An empty query returns
// every item.
func (v *View[T]) Filter(query string) []T {
	items := v.All()
	if query == "" {
		return items
	}
	lowered := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v.match(it, lowered) {
			out = append(out, it)
		}
	}
	return out
}

// Get finds an item by id.
func (v *View[T]) Get(id string) (T, bool) {
	var zero T
	r, ok := v.session.Lookup(kindOf[T](), id)
	if !ok {
		return zero, false
	}
	item, ok := r.(T)
	return item, ok
}

// Order returns the ids of items, as the row order a selection ranges over.
func Order[T core.Record](items []T) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.RecordID()
	}
	return ids
}

// ContainsFold reports whether any field contains the lower-cased query.
func ContainsFold(lowered string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowered) {
			return true
		}
	}
	return false
}

func kindOf[T core.Record]() core.Kind {
	var zero T
	switch any(zero).(type) {
	case core.Unit:
		return core.KindUnit
	case core.RTTIType:
		return core.KindType
	case core.DFMForm:
		return core.KindForm
	case core.DecompiledString:
		return core.KindString
	case core.NameEntry:
		return core.KindName
	case core.SourceFile:
		return core.KindSource
	case core.MapEntry:
		return core.KindMap
	}
	return ""
}
