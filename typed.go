package idr

import (
	"github.com/aretw0/idr/pkg/core"
	"github.com/aretw0/idr/pkg/typed"
)

// View is a type-safe, filterable read model over one artifact collection.
type View[T core.Record] = typed.View[T]

// Units returns a view over the session's units.
func Units(s *Session) *View[core.Unit] { return typed.Units(s) }

// Types returns a view over the session's RTTI types.
func Types(s *Session) *View[core.RTTIType] { return typed.Types(s) }

// Forms returns a view over the session's forms.
func Forms(s *Session) *View[core.DFMForm] { return typed.Forms(s) }

// Strings returns a view over the session's decompiled strings.
func Strings(s *Session) *View[core.DecompiledString] { return typed.Strings(s) }

// Names returns a view over the session's identified symbols.
func Names(s *Session) *View[core.NameEntry] { return typed.Names(s) }

// Sources returns a view over the session's listings.
func Sources(s *Session) *View[core.SourceFile] { return typed.Sources(s) }

// MapEntries returns a view over the session's memory map.
func MapEntries(s *Session) *View[core.MapEntry] { return typed.MapEntries(s) }
