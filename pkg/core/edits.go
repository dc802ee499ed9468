package core

import "fmt"

// The edit helpers resolve the stored baseline of an artifact, compare it with the
// current effective value and append a modification only when the value changes.
// They report ErrNotFound when the artifact does not exist in the loaded payload.

// EditString replaces the value of a decompiled string.
func (s *Session) EditString(id, value string) (Modification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	str, ok := s.store.DecompiledString(id)
	if !ok {
		return Modification{}, false, fmt.Errorf("%w: string %q", ErrNotFound, id)
	}
	return s.editLocked(ModString, id, str.Value, value)
}

// EditFormProperty sets a property of a component in a form. The target is
// "formID:component:key".
func (s *Session) EditFormProperty(formID, component, key, value string) (Modification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, err := s.formPropertyLocked(formID, component, key)
	if err != nil {
		return Modification{}, false, err
	}
	return s.editLocked(ModDFMProperty, ComposeTarget(formID, component, key), original, value)
}

// EditSource replaces the listing of a unit. The target is the unit id; the first
// listing attached to the unit provides the baseline.
func (s *Session) EditSource(unitID, content string) (Modification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.store.SourceFor(unitID, "")
	if !ok {
		return Modification{}, false, fmt.Errorf("%w: source for unit %q", ErrNotFound, unitID)
	}
	return s.editLocked(ModCode, unitID, src.Content, content)
}

// RenameSymbol renames an identified symbol.
func (s *Session) RenameSymbol(id, name string) (Modification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.store.Name(id)
	if !ok {
		return Modification{}, false, fmt.Errorf("%w: name %q", ErrNotFound, id)
	}
	return s.editLocked(ModName, id, n.Name, name)
}

// EditTypeDefinition replaces the definition of an RTTI type.
func (s *Session) EditTypeDefinition(id, definition string) (Modification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store.Type(id)
	if !ok {
		return Modification{}, false, fmt.Errorf("%w: type %q", ErrNotFound, id)
	}
	return s.editLocked(ModType, id, t.Definition, definition)
}

func (s *Session) editLocked(kind ModificationKind, target, original, value string) (Modification, bool, error) {
	if value == s.effectiveLocked(kind, target, original) {
		return Modification{}, false, nil
	}
	m := s.appendLocked(Modification{
		Kind:          kind,
		Target:        target,
		OriginalValue: original,
		NewValue:      value,
	})
	return m, true, nil
}

func (s *Session) formPropertyLocked(formID, component, key string) (string, error) {
	form, ok := s.store.Form(formID)
	if !ok {
		return "", fmt.Errorf("%w: form %q", ErrNotFound, formID)
	}
	var roots []*Node
	if form.Structure != nil {
		roots = []*Node{form.Structure}
	}
	comp, ok := FindByName(roots, component)
	if !ok {
		return "", fmt.Errorf("%w: component %q in form %q", ErrNotFound, component, formID)
	}
	v, _ := comp.Property(key)
	return v, nil
}

// StringValue returns the effective value of a decompiled string.
func (s *Session) StringValue(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	str, ok := s.store.DecompiledString(id)
	if !ok {
		return "", false
	}
	return s.effectiveLocked(ModString, id, str.Value), true
}

// FormProperty returns the effective value of a component property. A property the
// component does not carry reads as empty until it is edited.
func (s *Session) FormProperty(formID, component, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	original, err := s.formPropertyLocked(formID, component, key)
	if err != nil {
		return "", false
	}
	return s.effectiveLocked(ModDFMProperty, ComposeTarget(formID, component, key), original), true
}

// SourceContent returns the effective listing of a unit.
func (s *Session) SourceContent(unitID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.store.SourceFor(unitID, "")
	if !ok {
		return "", false
	}
	return s.effectiveLocked(ModCode, unitID, src.Content), true
}

// SymbolName returns the effective name of an identified symbol.
func (s *Session) SymbolName(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.store.Name(id)
	if !ok {
		return "", false
	}
	return s.effectiveLocked(ModName, id, n.Name), true
}

// TypeDefinition returns the effective definition of an RTTI type.
func (s *Session) TypeDefinition(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.store.Type(id)
	if !ok {
		return "", false
	}
	return s.effectiveLocked(ModType, id, t.Definition), true
}

func (s *Session) effectiveLocked(kind ModificationKind, target, original string) string {
	if v, ok := s.journal.EffectiveValueOf(kind, target); ok {
		return v
	}
	return original
}

// Edit is a user edit addressed by artifact, as issued by a consumer that does not
// resolve baselines itself.
type Edit struct {
	Kind      ModificationKind `json:"type" yaml:"type"`
	ID        string           `json:"id" yaml:"id"`
	Component string           `json:"component,omitempty" yaml:"component,omitempty"`
	Property  string           `json:"property,omitempty" yaml:"property,omitempty"`
	Value     string           `json:"value" yaml:"value"`
}

// Apply dispatches e to the matching edit helper. For code edits ID is the unit id.
func (s *Session) Apply(e Edit) (Modification, bool, error) {
	switch e.Kind {
	case ModString:
		return s.EditString(e.ID, e.Value)
	case ModDFMProperty:
		return s.EditFormProperty(e.ID, e.Component, e.Property, e.Value)
	case ModCode:
		return s.EditSource(e.ID, e.Value)
	case ModName:
		return s.RenameSymbol(e.ID, e.Value)
	case ModType:
		return s.EditTypeDefinition(e.ID, e.Value)
	}
	return Modification{}, false, fmt.Errorf("unknown modification kind %q", e.Kind)
}
