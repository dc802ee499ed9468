package core

import "slices"

// Collections is the full artifact set of one analysis session, as produced by the
// external decompiler. Keys follow the decompiler's payload schema.
type Collections struct {
	File       *LoadedFile        `json:"loadedFile,omitempty" yaml:"loadedFile,omitempty"`
	Units      []Unit             `json:"units" yaml:"units"`
	Types      []RTTIType         `json:"types" yaml:"types"`
	Forms      []DFMForm          `json:"forms" yaml:"forms"`
	Strings    []DecompiledString `json:"strings" yaml:"strings"`
	Names      []NameEntry        `json:"names" yaml:"names"`
	Sources    []SourceFile       `json:"sourceCode" yaml:"sourceCode"`
	MapEntries []MapEntry         `json:"mapEntries" yaml:"mapEntries"`
	ClassTree  []*Node            `json:"classTree" yaml:"classTree"`
}

// Counts returns the size of every collection.
func (c Collections) Counts() map[Kind]int {
	return map[Kind]int{
		KindUnit:   len(c.Units),
		KindType:   len(c.Types),
		KindForm:   len(c.Forms),
		KindString: len(c.Strings),
		KindName:   len(c.Names),
		KindSource: len(c.Sources),
		KindMap:    len(c.MapEntries),
	}
}

// View names a selection slot of the user interface.
type View string

const (
	ViewUnit      View = "unit"
	ViewForm      View = "form"
	ViewType      View = "type"
	ViewString    View = "string"
	ViewName      View = "name"
	ViewClass     View = "class"
	ViewComponent View = "component"
)

// Store owns the artifact collections of one session and the current selections.
//
// Collections are replaced wholesale by Load and never patched. Store is not safe for
// concurrent use; Session serializes access to it.
type Store struct {
	data       Collections
	index      map[Kind]map[string]int
	selections map[View]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		index:      buildIndex(Collections{}),
		selections: make(map[View]string),
	}
}

// Load validates c and, only if it is valid, replaces every collection and clears all
// selections. A rejected payload leaves the store exactly as it was.
// The store keeps its own copy: later changes to c do not reach it.
func (s *Store) Load(c Collections) error {
	if err := Validate(c); err != nil {
		return err
	}
	c = cloneCollections(c)
	index := buildIndex(c)
	s.data = c
	s.index = index
	s.selections = make(map[View]string)
	return nil
}

func cloneCollections(c Collections) Collections {
	if c.File != nil {
		f := *c.File
		c.File = &f
	}
	c.Units = slices.Clone(c.Units)
	for i, u := range c.Units {
		if u.Flags != nil {
			flags := *u.Flags
			c.Units[i].Flags = &flags
		}
	}
	c.Types = slices.Clone(c.Types)
	c.Forms = slices.Clone(c.Forms)
	for i, f := range c.Forms {
		c.Forms[i].Structure = CloneTree(f.Structure)
	}
	c.Strings = slices.Clone(c.Strings)
	for i, str := range c.Strings {
		c.Strings[i].Xrefs = slices.Clone(str.Xrefs)
	}
	c.Names = slices.Clone(c.Names)
	for i, n := range c.Names {
		c.Names[i].Xrefs = slices.Clone(n.Xrefs)
	}
	c.Sources = slices.Clone(c.Sources)
	c.MapEntries = slices.Clone(c.MapEntries)
	for i, m := range c.MapEntries {
		if m.Size != nil {
			size := *m.Size
			c.MapEntries[i].Size = &size
		}
	}
	if c.ClassTree != nil {
		roots := make([]*Node, len(c.ClassTree))
		for i, n := range c.ClassTree {
			roots[i] = CloneTree(n)
		}
		c.ClassTree = roots
	}
	return c
}

func buildIndex(c Collections) map[Kind]map[string]int {
	index := make(map[Kind]map[string]int, len(Kinds))
	add := func(kind Kind, n int, id func(int) string) {
		m := make(map[string]int, n)
		for i := 0; i < n; i++ {
			m[id(i)] = i
		}
		index[kind] = m
	}
	add(KindUnit, len(c.Units), func(i int) string { return c.Units[i].ID })
	add(KindType, len(c.Types), func(i int) string { return c.Types[i].ID })
	add(KindForm, len(c.Forms), func(i int) string { return c.Forms[i].ID })
	add(KindString, len(c.Strings), func(i int) string { return c.Strings[i].ID })
	add(KindName, len(c.Names), func(i int) string { return c.Names[i].ID })
	add(KindSource, len(c.Sources), func(i int) string { return c.Sources[i].ID })
	add(KindMap, len(c.MapEntries), func(i int) string { return c.MapEntries[i].ID })
	return index
}

// Lookup finds an artifact by kind and id. Unknown kinds and ids are a miss.
func (s *Store) Lookup(kind Kind, id string) (Record, bool) {
	i, ok := s.index[kind][id]
	if !ok {
		return nil, false
	}
	switch kind {
	case KindUnit:
		return s.data.Units[i], true
	case KindType:
		return s.data.Types[i], true
	case KindForm:
		return s.data.Forms[i], true
	case KindString:
		return s.data.Strings[i], true
	case KindName:
		return s.data.Names[i], true
	case KindSource:
		return s.data.Sources[i], true
	case KindMap:
		return s.data.MapEntries[i], true
	}
	return nil, false
}

func lookupAs[T Record](s *Store, kind Kind, id string) (T, bool) {
	var zero T
	r, ok := s.Lookup(kind, id)
	if !ok {
		return zero, false
	}
	v, ok := r.(T)
	return v, ok
}

func (s *Store) Unit(id string) (Unit, bool) { return lookupAs[Unit](s, KindUnit, id) }
func (s *Store) Type(id string) (RTTIType, bool) { return lookupAs[RTTIType](s, KindType, id) }
func (s *Store) Form(id string) (DFMForm, bool) { return lookupAs[DFMForm](s, KindForm, id) }
func (s *Store) DecompiledString(id string) (DecompiledString, bool) {
	return lookupAs[DecompiledString](s, KindString, id)
}
func (s *Store) Name(id string) (NameEntry, bool) { return lookupAs[NameEntry](s, KindName, id) }
func (s *Store) Source(id string) (SourceFile, bool) { return lookupAs[SourceFile](s, KindSource, id) }
func (s *Store) MapEntry(id string) (MapEntry, bool) { return lookupAs[MapEntry](s, KindMap, id) }

// Select sets the selection of a view slot. The id is not checked against any
// collection: selection and loading may race, and a stale id simply resolves to nothing.
func (s *Store) Select(view View, id string) {
	if id == "" {
		delete(s.selections, view)
		return
	}
	s.selections[view] = id
}

// ClearSelection empties a view slot.
func (s *Store) ClearSelection(view View) {
	delete(s.selections, view)
}

// Selection returns the raw id selected in a view slot.
func (s *Store) Selection(view View) (string, bool) {
	id, ok := s.selections[view]
	return id, ok
}

// SelectedUnit resolves the unit slot. A stale id reads as no selection.
func (s *Store) SelectedUnit() (Unit, bool) {
	id, ok := s.selections[ViewUnit]
	if !ok {
		return Unit{}, false
	}
	return s.Unit(id)
}

// SelectedForm resolves the form slot. A stale id reads as no selection.
func (s *Store) SelectedForm() (DFMForm, bool) {
	id, ok := s.selections[ViewForm]
	if !ok {
		return DFMForm{}, false
	}
	return s.Form(id)
}

// ActiveForm is the selected form, or the first form when nothing valid is selected.
func (s *Store) ActiveForm() (DFMForm, bool) {
	if f, ok := s.SelectedForm(); ok {
		return f, true
	}
	if len(s.data.Forms) == 0 {
		return DFMForm{}, false
	}
	return s.data.Forms[0], true
}

// SourcesForUnit lists the listings attached to a unit, in collection order.
func (s *Store) SourcesForUnit(unitID string) []SourceFile {
	out := []SourceFile{}
	for _, f := range s.data.Sources {
		if f.UnitID == unitID {
			out = append(out, f)
		}
	}
	return out
}

// SourceFor returns the first listing of a unit in the given language.
// An empty language matches any listing.
func (s *Store) SourceFor(unitID string, lang Language) (SourceFile, bool) {
	for _, f := range s.data.Sources {
		if f.UnitID == unitID && (lang == "" || f.Language == lang) {
			return f, true
		}
	}
	return SourceFile{}, false
}

// MapEntriesByID returns the map entries whose ids are in ids, in collection order.
func (s *Store) MapEntriesByID(ids []string) []MapEntry {
	out := []MapEntry{}
	for _, e := range s.data.MapEntries {
		if slices.Contains(ids, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) File() (LoadedFile, bool) {
	if s.data.File == nil {
		return LoadedFile{}, false
	}
	return *s.data.File, true
}

func (s *Store) Units() []Unit { return slices.Clone(s.data.Units) }
func (s *Store) Types() []RTTIType { return slices.Clone(s.data.Types) }
func (s *Store) Forms() []DFMForm { return slices.Clone(s.data.Forms) }
func (s *Store) Strings() []DecompiledString { return slices.Clone(s.data.Strings) }
func (s *Store) Names() []NameEntry { return slices.Clone(s.data.Names) }
func (s *Store) Sources() []SourceFile { return slices.Clone(s.data.Sources) }
func (s *Store) MapEntries() []MapEntry { return slices.Clone(s.data.MapEntries) }
func (s *Store) ClassTree() []*Node { return slices.Clone(s.data.ClassTree) }
func (s *Store) Counts() map[Kind]int { return s.data.Counts() }

// Records returns a collection as generic records.
func (s *Store) Records(kind Kind) ([]Record, error) {
	var out []Record
	switch kind {
	case KindUnit:
		out = toRecords(s.data.Units)
	case KindType:
		out = toRecords(s.data.Types)
	case KindForm:
		out = toRecords(s.data.Forms)
	case KindString:
		out = toRecords(s.data.Strings)
	case KindName:
		out = toRecords(s.data.Names)
	case KindSource:
		out = toRecords(s.data.Sources)
	case KindMap:
		out = toRecords(s.data.MapEntries)
	default:
		return nil, ErrUnknownKind
	}
	return out, nil
}

func toRecords[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
