package core_test

import (
	"testing"

	"github.com/aretw0/idr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *core.Collections)
		kind   core.Kind
		field  string
	}{
		{"valid", func(c *core.Collections) {}, "", ""},
		{"empty", func(c *core.Collections) { *c = core.Collections{} }, "", ""},
		{"unit without id", func(c *core.Collections) { c.Units[0].ID = "" }, core.KindUnit, "id"},
		{"unknown unit type", func(c *core.Collections) { c.Units[0].Type = "weird" }, core.KindUnit, "type"},
		{"duplicate unit id", func(c *core.Collections) { c.Units[1].ID = "u1" }, core.KindUnit, "id"},
		{"type without address", func(c *core.Collections) { c.Types[0].Address = "" }, core.KindType, "address"},
		{"form without name", func(c *core.Collections) { c.Forms[0].Name = "" }, core.KindForm, "name"},
		{"component without name", func(c *core.Collections) { c.Forms[0].Structure.Children[0].Name = "" }, core.KindForm, "name"},
		{"string without address", func(c *core.Collections) { c.Strings[1].Address = "" }, core.KindString, "address"},
		{"name without name", func(c *core.Collections) { c.Names[0].Name = "" }, core.KindName, "name"},
		{"source without unit", func(c *core.Collections) { c.Sources[0].UnitID = "" }, core.KindSource, "unitId"},
		{"unknown language", func(c *core.Collections) { c.Sources[0].Language = "cobol" }, core.KindSource, "language"},
		{"map without segment", func(c *core.Collections) { c.MapEntries[0].Segment = "" }, core.KindMap, "segment"},
		{"class without id", func(c *core.Collections) { c.ClassTree[0].Children[0].ID = "" }, "classTree", "id"},
		{"null class node", func(c *core.Collections) { c.ClassTree[0].Children = append(c.ClassTree[0].Children, nil) }, "classTree", "children"},
		{"unknown binding", func(c *core.Collections) {
			c.ClassTree[0].Methods = []core.Method{{Address: "0", Name: "Free", Binding: "static"}}
		}, "classTree", "methods"},
		{"cycle", func(c *core.Collections) {
			leaf := c.ClassTree[0].Children[0].Children[0]
			leaf.Children = []*core.Node{c.ClassTree[0]}
		}, "classTree", "children"},
		{"shared node", func(c *core.Collections) {
			c.ClassTree = append(c.ClassTree, c.ClassTree[0].Children[0])
		}, "classTree", "children"},
		{"unsupported delphi version", func(c *core.Collections) { c.File.DelphiVersion = "Delphi 1" }, "file", "delphiVersion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleCollections()
			tt.mutate(&c)
			err := core.Validate(c)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, core.ErrInvalidPayload)
		})
	}
}

func TestParseDelphiVersion(t *testing.T) {
	v, err := core.ParseDelphiVersion("")
	require.NoError(t, err)
	assert.Equal(t, core.DelphiAuto, v)

	v, err = core.ParseDelphiVersion("Delphi XE2")
	require.NoError(t, err)
	assert.Equal(t, core.DelphiVersion("Delphi XE2"), v)

	_, err = core.ParseDelphiVersion("Delphi 12")
	assert.Error(t, err)
}
