package core_test

import (
	"testing"

	"github.com/aretw0/idr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditString(t *testing.T) {
	s := newSession(t)

	_, changed, err := s.EditString("s1", "Hello")
	require.NoError(t, err)
	assert.False(t, changed, "unchanged value is not journaled")

	m, changed, err := s.EditString("s1", "Hi")
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, core.ModString, m.Kind)
	assert.Equal(t, "Hello", m.OriginalValue)

	v, ok := s.StringValue("s1")
	require.True(t, ok)
	assert.Equal(t, "Hi", v)

	s.Undo()
	v, _ = s.StringValue("s1")
	assert.Equal(t, "Hello", v, "undo is visible to readers")

	_, _, err = s.EditString("missing", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, ok = s.StringValue("missing")
	assert.False(t, ok)
}

func TestEditString_ComparesWithEffectiveValue(t *testing.T) {
	s := newSession(t)
	_, _, err := s.EditString("s1", "Hi")
	require.NoError(t, err)

	_, changed, err := s.EditString("s1", "Hi")
	require.NoError(t, err)
	assert.False(t, changed)

	m, changed, err := s.EditString("s1", "Hello")
	require.NoError(t, err)
	assert.True(t, changed, "reverting to the stored value is an edit")
	assert.Equal(t, "Hello", m.OriginalValue)
	assert.Len(t, s.Modifications(), 2)
}

func TestEditFormProperty(t *testing.T) {
	s := newSession(t)

	m, changed, err := s.EditFormProperty("form-1", "btnOk", "Caption", "Go")
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, "form-1:btnOk:Caption", m.Target)
	assert.Equal(t, "OK", m.OriginalValue)
	assert.Equal(t, core.ModDFMProperty, m.Kind)

	v, ok := s.FormProperty("form-1", "btnOk", "Caption")
	require.True(t, ok)
	assert.Equal(t, "Go", v)

	v, ok = s.FormProperty("form-1", "btnOk", "Hint")
	require.True(t, ok)
	assert.Empty(t, v)

	_, _, err = s.EditFormProperty("form-1", "btnMissing", "Caption", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, _, err = s.EditFormProperty("form-2", "btnOk", "Caption", "x")
	assert.ErrorIs(t, err, core.ErrNotFound, "form without structure has no components")
}

func TestEditSource(t *testing.T) {
	s := newSession(t)

	m, changed, err := s.EditSource("u2", "unit MainForm; // patched")
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, "u2", m.Target)
	assert.Equal(t, core.ModCode, m.Kind)

	v, ok := s.SourceContent("u2")
	require.True(t, ok)
	assert.Equal(t, "unit MainForm; // patched", v)

	_, _, err = s.EditSource("u1", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRenameSymbolAndTypeDefinition(t *testing.T) {
	s := newSession(t)

	_, changed, err := s.RenameSymbol("n1", "TForm1.ButtonClick")
	require.NoError(t, err)
	assert.True(t, changed)
	name, _ := s.SymbolName("n1")
	assert.Equal(t, "TForm1.ButtonClick", name)

	_, changed, err = s.EditTypeDefinition("t1", "TForm1 = class(TCustomForm)")
	require.NoError(t, err)
	assert.True(t, changed)
	def, _ := s.TypeDefinition("t1")
	assert.Equal(t, "TForm1 = class(TCustomForm)", def)

	s.Undo()
	def, _ = s.TypeDefinition("t1")
	assert.Equal(t, "TForm1 = class(TForm)", def)
	name, _ = s.SymbolName("n1")
	assert.Equal(t, "TForm1.ButtonClick", name)
}

func TestApply(t *testing.T) {
	s := newSession(t)
	edits := []core.Edit{
		{Kind: core.ModString, ID: "s2", Value: "Earth"},
		{Kind: core.ModDFMProperty, ID: "form-1", Component: "btnOk", Property: "Width", Value: "80"},
		{Kind: core.ModCode, ID: "u2", Value: "unit Main;"},
		{Kind: core.ModName, ID: "n1", Value: "Start"},
		{Kind: core.ModType, ID: "t1", Value: "TForm1 = class"},
	}
	for _, e := range edits {
		_, changed, err := s.Apply(e)
		require.NoError(t, err)
		assert.True(t, changed)
	}

	mods, cursor := s.History()
	assert.Len(t, mods, 5)
	assert.Equal(t, 4, cursor)
	assert.Equal(t, "75", mods[1].OriginalValue)

	_, _, err := s.Apply(core.Edit{Kind: "bogus", ID: "s1"})
	assert.Error(t, err)
}
