package core_test

import (
	"fmt"
	"time"

	"github.com/aretw0/idr/pkg/core"
)

// classChain builds TObject -> TPersistent -> TComponent.
func classChain() []*core.Node {
	component := &core.Node{ID: "c3", Name: "TComponent", Parent: "TPersistent", Children: []*core.Node{}}
	persistent := &core.Node{ID: "c2", Name: "TPersistent", Parent: "TObject", Children: []*core.Node{component}}
	object := &core.Node{ID: "c1", Name: "TObject", Children: []*core.Node{persistent}}
	return []*core.Node{object}
}

func sampleCollections() core.Collections {
	size := int64(512)
	return core.Collections{
		File: &core.LoadedFile{Name: "app.exe", Path: "/bin/app.exe", Size: 1024, DelphiVersion: "Delphi 7"},
		Units: []core.Unit{
			{ID: "u1", Address: "00401000", Name: "System", Type: core.UnitStandard},
			{ID: "u2", Address: "00402000", Name: "MainForm", Type: core.UnitUser},
		},
		Types: []core.RTTIType{
			{ID: "t1", Address: "00410000", Name: "TForm1", Kind: "class", Definition: "TForm1 = class(TForm)"},
		},
		Forms: []core.DFMForm{
			{
				ID:      "form-1",
				Name:    "Form1",
				Content: "object Form1: TForm1",
				Structure: &core.Node{
					Name: "Form1", Kind: "TForm1",
					Children: []*core.Node{
						{Name: "btnOk", Kind: "TButton", Properties: map[string]any{"Caption": "OK", "Width": 75}},
					},
				},
			},
			{ID: "form-2", Name: "About", Content: "object About: TAbout"},
		},
		Strings: []core.DecompiledString{
			{ID: "s1", Address: "00420000", Value: "Hello", Length: 5},
			{ID: "s2", Address: "00420010", Value: "World", Length: 5},
		},
		Names: []core.NameEntry{
			{ID: "n1", Address: "00401100", Name: "sub_401100"},
		},
		Sources: []core.SourceFile{
			{ID: "src1", UnitID: "u2", Name: "MainForm.pas", Content: "unit MainForm;", Language: core.LangPascal},
			{ID: "src2", UnitID: "u2", Name: "MainForm.asm", Content: "push ebp", Language: core.LangAsm},
		},
		MapEntries: []core.MapEntry{
			{ID: "m1", Address: "0001:00000000", Name: "System", Segment: "CODE", Size: &size},
			{ID: "m2", Address: "0002:00000000", Name: "Data", Segment: "DATA"},
		},
		ClassTree: classChain(),
	}
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// sequentialIDs returns an id generator yielding mod-1, mod-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("mod-%d", n)
	}
}
