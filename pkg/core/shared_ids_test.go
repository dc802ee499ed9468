package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/idr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedIDCollections gives every collection an artifact with id "1".
func sharedIDCollections() core.Collections {
	return core.Collections{
		Units: []core.Unit{{ID: "1", Address: "00401000", Name: "Main"}},
		Types: []core.RTTIType{{ID: "1", Address: "00410000", Name: "TMain", Definition: "class"}},
		Forms: []core.DFMForm{{
			ID: "1", Name: "Form1",
			Structure: &core.Node{Name: "Form1", Children: []*core.Node{
				{Name: "btn", Properties: map[string]any{"Caption": "OK"}},
			}},
		}},
		Strings:    []core.DecompiledString{{ID: "1", Address: "00420000", Value: "Hello"}},
		Names:      []core.NameEntry{{ID: "1", Address: "00401100", Name: "EntryPoint"}},
		Sources:    []core.SourceFile{{ID: "1", UnitID: "1", Name: "Main.pas", Content: "unit Main;", Language: core.LangPascal}},
		MapEntries: []core.MapEntry{{ID: "1", Address: "0001:00000000", Name: "Main", Segment: "CODE"}},
	}
}

func newSharedIDSession(t *testing.T) *core.Session {
	t.Helper()
	s := core.NewSession(core.Config{Clock: fixedClock(), NewID: sequentialIDs()})
	require.NoError(t, s.Load(sharedIDCollections()))
	return s
}

type editableKind struct {
	name     string
	baseline string
	edit     func(s *core.Session, v string) (core.Modification, bool, error)
	read     func(s *core.Session) (string, bool)
}

var editableKinds = []editableKind{
	{
		name:     "string",
		baseline: "Hello",
		edit:     func(s *core.Session, v string) (core.Modification, bool, error) { return s.EditString("1", v) },
		read:     func(s *core.Session) (string, bool) { return s.StringValue("1") },
	},
	{
		name:     "name",
		baseline: "EntryPoint",
		edit:     func(s *core.Session, v string) (core.Modification, bool, error) { return s.RenameSymbol("1", v) },
		read:     func(s *core.Session) (string, bool) { return s.SymbolName("1") },
	},
	{
		name:     "type",
		baseline: "class",
		edit:     func(s *core.Session, v string) (core.Modification, bool, error) { return s.EditTypeDefinition("1", v) },
		read:     func(s *core.Session) (string, bool) { return s.TypeDefinition("1") },
	},
	{
		name:     "code",
		baseline: "unit Main;",
		edit:     func(s *core.Session, v string) (core.Modification, bool, error) { return s.EditSource("1", v) },
		read:     func(s *core.Session) (string, bool) { return s.SourceContent("1") },
	},
	{
		name:     "dfm-property",
		baseline: "OK",
		edit: func(s *core.Session, v string) (core.Modification, bool, error) {
			return s.EditFormProperty("1", "btn", "Caption", v)
		},
		read: func(s *core.Session) (string, bool) { return s.FormProperty("1", "btn", "Caption") },
	},
}

func TestStore_SharedIDsResolvePerKind(t *testing.T) {
	s := core.NewStore()
	require.NoError(t, s.Load(sharedIDCollections()))

	names := map[core.Kind]string{}
	for _, k := range core.Kinds {
		r, ok := s.Lookup(k, "1")
		require.True(t, ok, k)
		names[k] = r.RecordName()
	}
	assert.Equal(t, "Main", names[core.KindUnit])
	assert.Equal(t, "TMain", names[core.KindType])
	assert.Equal(t, "Hello", names[core.KindString])
	assert.Equal(t, "EntryPoint", names[core.KindName])
	assert.Equal(t, "Main.pas", names[core.KindSource])
}

func TestEdits_SharedIDsStayInTheirCollection(t *testing.T) {
	for _, edited := range editableKinds {
		t.Run(edited.name, func(t *testing.T) {
			s := newSharedIDSession(t)

			_, changed, err := edited.edit(s, "Start")
			require.NoError(t, err)
			require.True(t, changed)

			for _, other := range editableKinds {
				got, ok := other.read(s)
				require.True(t, ok, other.name)
				if other.name == edited.name {
					assert.Equal(t, "Start", got)
				} else {
					assert.Equal(t, other.baseline, got, "%s leaked into %s", edited.name, other.name)
				}
			}

			// The same value on another collection is still a change.
			for _, other := range editableKinds {
				if other.name == edited.name {
					continue
				}
				m, changed, err := other.edit(s, "Start")
				require.NoError(t, err)
				assert.True(t, changed, other.name)
				assert.Equal(t, other.baseline, m.OriginalValue)
			}
			assert.Len(t, s.Modifications(), len(editableKinds))
		})
	}
}

func TestUndo_EventValueIgnoresOtherKinds(t *testing.T) {
	s := newSharedIDSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := s.Watch(ctx, "1")
	require.NoError(t, err)

	_, _, err = s.RenameSymbol("1", "Start")
	require.NoError(t, err)
	_, _, err = s.EditString("1", "Hi")
	require.NoError(t, err)
	_, ok := s.Undo()
	require.True(t, ok)

	var last core.Event
	for i := 0; i < 3; i++ {
		select {
		case last = <-events:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	assert.Equal(t, core.EventUndo, last.Type)
	assert.Equal(t, "Hello", last.Value)
}
