package core

import (
	"fmt"
	"strings"
)

// Kind identifies an artifact collection.
type Kind string

const (
	KindUnit   Kind = "unit"
	KindType   Kind = "type"
	KindForm   Kind = "form"
	KindString Kind = "string"
	KindName   Kind = "name"
	KindSource Kind = "source"
	KindMap    Kind = "map"
)

// Kinds lists every artifact kind in display order.
var Kinds = []Kind{KindUnit, KindType, KindForm, KindString, KindName, KindSource, KindMap}

// ParseKind accepts the singular kind name and the plural collection name ("units", "mapEntries").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unit", "units":
		return KindUnit, nil
	case "type", "types":
		return KindType, nil
	case "form", "forms":
		return KindForm, nil
	case "string", "strings":
		return KindString, nil
	case "name", "names":
		return KindName, nil
	case "source", "sources", "sourcecode":
		return KindSource, nil
	case "map", "mapentries":
		return KindMap, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Record is the common read surface of every artifact.
// Addresses are opaque labels and are never parsed as numbers.
type Record interface {
	RecordID() string
	RecordAddress() string
	RecordName() string
}

// UnitType classifies a unit found in the binary.
type UnitType string

const (
	UnitStandard UnitType = "standard"
	UnitUser     UnitType = "user"
	UnitTrivial  UnitType = "trivial"
	UnitUnknown  UnitType = "unknown"
)

// UnitFlags records whether a unit has initialization/finalization sections.
type UnitFlags struct {
	HasInitialization bool `json:"hasInitialization" yaml:"hasInitialization"`
	HasFinalization   bool `json:"hasFinalization" yaml:"hasFinalization"`
}

// Unit is a compilation unit identified in the binary.
type Unit struct {
	ID                    string     `json:"id" yaml:"id"`
	Address               string     `json:"address" yaml:"address"`
	Name                  string     `json:"name" yaml:"name"`
	Type                  UnitType   `json:"type" yaml:"type"`
	InitializationAddress string     `json:"initializationAddress,omitempty" yaml:"initializationAddress,omitempty"`
	FinalizationAddress   string     `json:"finalizationAddress,omitempty" yaml:"finalizationAddress,omitempty"`
	Flags                 *UnitFlags `json:"flags,omitempty" yaml:"flags,omitempty"`
}

func (u Unit) RecordID() string      { return u.ID }
func (u Unit) RecordAddress() string { return u.Address }
func (u Unit) RecordName() string    { return u.Name }

// RTTIType is a run-time type information record.
type RTTIType struct {
	ID         string `json:"id" yaml:"id"`
	Address    string `json:"address" yaml:"address"`
	Name       string `json:"name" yaml:"name"`
	Kind       string `json:"kind" yaml:"kind"`
	Definition string `json:"definition" yaml:"definition"`
}

func (t RTTIType) RecordID() string      { return t.ID }
func (t RTTIType) RecordAddress() string { return t.Address }
func (t RTTIType) RecordName() string    { return t.Name }

// DFMForm is a visual form resource: its textual DFM content and the parsed component tree.
type DFMForm struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Content   string `json:"content" yaml:"content"`
	Structure *Node  `json:"structure" yaml:"structure"`
}

func (f DFMForm) RecordID() string      { return f.ID }
func (f DFMForm) RecordAddress() string { return "" }
func (f DFMForm) RecordName() string    { return f.Name }

// DecompiledString is a string literal extracted from the binary.
type DecompiledString struct {
	ID      string   `json:"id" yaml:"id"`
	Address string   `json:"address" yaml:"address"`
	Value   string   `json:"value" yaml:"value"`
	Length  int      `json:"length" yaml:"length"`
	Xrefs   []string `json:"xrefs" yaml:"xrefs"`
}

func (s DecompiledString) RecordID() string      { return s.ID }
func (s DecompiledString) RecordAddress() string { return s.Address }
func (s DecompiledString) RecordName() string    { return s.Value }

// NameEntry is an identified symbol.
type NameEntry struct {
	ID      string   `json:"id" yaml:"id"`
	Address string   `json:"address" yaml:"address"`
	Name    string   `json:"name" yaml:"name"`
	Xrefs   []string `json:"xrefs" yaml:"xrefs"`
}

func (n NameEntry) RecordID() string      { return n.ID }
func (n NameEntry) RecordAddress() string { return n.Address }
func (n NameEntry) RecordName() string    { return n.Name }

// Language of a source listing.
type Language string

const (
	LangPascal Language = "pascal"
	LangAsm    Language = "asm"
)

// SourceFile is a reconstructed listing attached to a unit.
type SourceFile struct {
	ID       string   `json:"id" yaml:"id"`
	UnitID   string   `json:"unitId" yaml:"unitId"`
	Name     string   `json:"name" yaml:"name"`
	Content  string   `json:"content" yaml:"content"`
	Language Language `json:"language" yaml:"language"`
}

func (s SourceFile) RecordID() string      { return s.ID }
func (s SourceFile) RecordAddress() string { return "" }
func (s SourceFile) RecordName() string    { return s.Name }

// MapEntry is a row of the memory map.
type MapEntry struct {
	ID      string `json:"id" yaml:"id"`
	Address string `json:"address" yaml:"address"`
	Name    string `json:"name" yaml:"name"`
	Segment string `json:"segment" yaml:"segment"`
	Size    *int64 `json:"size,omitempty" yaml:"size,omitempty"`
}

func (m MapEntry) RecordID() string      { return m.ID }
func (m MapEntry) RecordAddress() string { return m.Address }
func (m MapEntry) RecordName() string    { return m.Name }

// TSV renders the entry as address, segment, name and size separated by tabs.
// A missing size renders as 0.
func (m MapEntry) TSV() string {
	var size int64
	if m.Size != nil {
		size = *m.Size
	}
	return fmt.Sprintf("%s\t%s\t%s\t%d", m.Address, m.Segment, m.Name, size)
}

// FormatMapRows joins entries with TSV, one per line.
func FormatMapRows(entries []MapEntry) string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.TSV())
	}
	return strings.Join(rows, "\n")
}
