package core

import "slices"

var (
	unitTypes = []UnitType{UnitStandard, UnitUser, UnitTrivial, UnitUnknown}
	languages = []Language{LangPascal, LangAsm}
	bindings  = []Binding{BindingVirtual, BindingDynamic, BindingMessage}
)

// Validate checks a payload before it is adopted: required fields, id uniqueness per
// collection, enumerated values, and exclusive acyclic ownership of every tree node.
// It reports the first defect as a *ValidationError.
func Validate(c Collections) error {
	v := &validator{seen: make(map[*Node]bool)}

	if c.File != nil && c.File.DelphiVersion != "" {
		if _, err := ParseDelphiVersion(string(c.File.DelphiVersion)); err != nil {
			return &ValidationError{Kind: "file", Field: "delphiVersion", Reason: "is not supported"}
		}
	}

	ids := v.ids(KindUnit)
	for i, u := range c.Units {
		if err := v.required(KindUnit, i, u.ID, "address", u.Address, "name", u.Name); err != nil {
			return err
		}
		if u.Type != "" && !slices.Contains(unitTypes, u.Type) {
			return &ValidationError{Kind: KindUnit, Index: i, ID: u.ID, Field: "type", Reason: "is not a unit type"}
		}
		if err := ids.add(i, u.ID); err != nil {
			return err
		}
	}

	ids = v.ids(KindType)
	for i, t := range c.Types {
		if err := v.required(KindType, i, t.ID, "address", t.Address, "name", t.Name); err != nil {
			return err
		}
		if err := ids.add(i, t.ID); err != nil {
			return err
		}
	}

	ids = v.ids(KindForm)
	for i, f := range c.Forms {
		if err := v.required(KindForm, i, f.ID, "name", f.Name); err != nil {
			return err
		}
		if err := ids.add(i, f.ID); err != nil {
			return err
		}
		if f.Structure != nil {
			if err := v.tree(KindForm, i, f.ID, []*Node{f.Structure}, false); err != nil {
				return err
			}
		}
	}

	ids = v.ids(KindString)
	for i, s := range c.Strings {
		if err := v.required(KindString, i, s.ID, "address", s.Address); err != nil {
			return err
		}
		if err := ids.add(i, s.ID); err != nil {
			return err
		}
	}

	ids = v.ids(KindName)
	for i, n := range c.Names {
		if err := v.required(KindName, i, n.ID, "address", n.Address, "name", n.Name); err != nil {
			return err
		}
		if err := ids.add(i, n.ID); err != nil {
			return err
		}
	}

	ids = v.ids(KindSource)
	for i, s := range c.Sources {
		if err := v.required(KindSource, i, s.ID, "unitId", s.UnitID, "name", s.Name); err != nil {
			return err
		}
		if s.Language != "" && !slices.Contains(languages, s.Language) {
			return &ValidationError{Kind: KindSource, Index: i, ID: s.ID, Field: "language", Reason: "is not pascal or asm"}
		}
		if err := ids.add(i, s.ID); err != nil {
			return err
		}
	}

	ids = v.ids(KindMap)
	for i, m := range c.MapEntries {
		if err := v.required(KindMap, i, m.ID, "address", m.Address, "segment", m.Segment); err != nil {
			return err
		}
		if err := ids.add(i, m.ID); err != nil {
			return err
		}
	}

	return v.tree("classTree", 0, "", c.ClassTree, true)
}

type validator struct {
	seen map[*Node]bool
}

type idSet struct {
	kind Kind
	ids  map[string]bool
}

func (v *validator) ids(kind Kind) *idSet {
	return &idSet{kind: kind, ids: make(map[string]bool)}
}

func (s *idSet) add(i int, id string) error {
	if s.ids[id] {
		return &ValidationError{Kind: s.kind, Index: i, ID: id, Field: "id", Reason: "is duplicated"}
	}
	s.ids[id] = true
	return nil
}

// required checks the id plus (field, value) pairs for emptiness.
func (v *validator) required(kind Kind, i int, id string, pairs ...string) error {
	if id == "" {
		return &ValidationError{Kind: kind, Index: i, Field: "id", Reason: "is required"}
	}
	for p := 0; p+1 < len(pairs); p += 2 {
		if pairs[p+1] == "" {
			return &ValidationError{Kind: kind, Index: i, ID: id, Field: pairs[p], Reason: "is required"}
		}
	}
	return nil
}

// tree walks a forest by pointer identity. Class nodes need an id; form components
// only need a name.
func (v *validator) tree(kind Kind, i int, owner string, roots []*Node, needID bool) error {
	var stack []*Node
	var visit func(nodes []*Node) error
	visit = func(nodes []*Node) error {
		for _, n := range nodes {
			if n == nil {
				return &ValidationError{Kind: kind, Index: i, ID: owner, Field: "children", Reason: "contains a null node"}
			}
			if slices.Contains(stack, n) {
				return &ValidationError{Kind: kind, Index: i, ID: n.ID, Field: "children", Reason: "forms a cycle"}
			}
			if v.seen[n] {
				return &ValidationError{Kind: kind, Index: i, ID: n.ID, Field: "children", Reason: "node is owned twice"}
			}
			v.seen[n] = true
			if needID && n.ID == "" {
				return &ValidationError{Kind: kind, Index: i, ID: owner, Field: "id", Reason: "is required"}
			}
			if n.Name == "" {
				return &ValidationError{Kind: kind, Index: i, ID: n.ID, Field: "name", Reason: "is required"}
			}
			for _, m := range n.Methods {
				if !slices.Contains(bindings, m.Binding) {
					return &ValidationError{Kind: kind, Index: i, ID: n.ID, Field: "methods", Reason: "has an unknown binding"}
				}
			}
			stack = append(stack, n)
			if err := visit(n.Children); err != nil {
				return err
			}
			stack = stack[:len(stack)-1]
		}
		return nil
	}
	return visit(roots)
}
