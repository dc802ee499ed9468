package typed

import "github.com/aretw0/idr/pkg/core"

// Units searches unit names and addresses.
func Units(s *core.Session) *View[core.Unit] {
	return NewView(s, (*core.Store).Units, nil)
}

// Types searches type names and kinds.
func Types(s *core.Session) *View[core.RTTIType] {
	return NewView(s, (*core.Store).Types, func(t core.RTTIType, q string) bool {
		return ContainsFold(q, t.Name, t.Kind)
	})
}

// Forms searches form names.
func Forms(s *core.Session) *View[core.DFMForm] {
	return NewView(s, (*core.Store).Forms, func(f core.DFMForm, q string) bool {
		return ContainsFold(q, f.Name)
	})
}

// Strings searches string values and addresses.
func Strings(s *core.Session) *View[core.DecompiledString] {
	return NewView(s, (*core.Store).Strings, nil)
}

// Names searches symbol names and addresses.
func Names(s *core.Session) *View[core.NameEntry] {
	return NewView(s, (*core.Store).Names, nil)
}

// Sources searches listing names and languages.
func Sources(s *core.Session) *View[core.SourceFile] {
	return NewView(s, (*core.Store).Sources, func(f core.SourceFile, q string) bool {
		return ContainsFold(q, f.Name, string(f.Language))
	})
}

// MapEntries searches map names, addresses and segments.
func MapEntries(s *core.Session) *View[core.MapEntry] {
	return NewView(s, (*core.Store).MapEntries, func(m core.MapEntry, q string) bool {
		return ContainsFold(q, m.Name, m.Address, m.Segment)
	})
}
