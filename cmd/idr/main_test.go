package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/idr"
	"github.com/aretw0/idr/pkg/core"
)

func loadedSession(t *testing.T) *idr.Session {
	t.Helper()
	size := int64(256)
	session := idr.New()
	err := session.Load(core.Collections{
		File:  &core.LoadedFile{Name: "app.exe", Size: 2048},
		Units: []core.Unit{{ID: "u1", Address: "00401000", Name: "System", Type: core.UnitStandard}},
		Strings: []core.DecompiledString{
			{ID: "s1", Address: "00420000", Value: "Hello"},
			{ID: "s2", Address: "00420010", Value: "World"},
		},
		MapEntries: []core.MapEntry{
			{ID: "m1", Address: "0001:00000000", Name: "System", Segment: "CODE", Size: &size},
		},
		ClassTree: []*core.Node{{
			ID: "c1", Name: "TObject", Children: []*core.Node{{
				ID: "c2", Name: "TPersistent", Parent: "TObject", Children: []*core.Node{{
					ID: "c3", Name: "TComponent", Parent: "TPersistent",
				}},
			}},
		}},
	})
	require.NoError(t, err)
	return session
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, loadedSession(t))

	out := buf.String()
	assert.Contains(t, out, "app.exe (Auto, 2048 bytes)")
	assert.Contains(t, out, "string:   2")
	assert.Contains(t, out, "classes:  3")
}

func TestFilterRecords(t *testing.T) {
	session := loadedSession(t)

	records := filterRecords(session, core.KindString, "WOR")
	require.Len(t, records, 1)
	assert.Equal(t, "s2", records[0].RecordID())

	assert.Len(t, filterRecords(session, core.KindString, ""), 2)
	assert.Empty(t, filterRecords(session, core.KindForm, ""))
}

func TestWriteRecords(t *testing.T) {
	session := loadedSession(t)

	t.Run("map entries as TSV", func(t *testing.T) {
		var buf bytes.Buffer
		writeRecords(&buf, filterRecords(session, core.KindMap, ""), true)
		assert.Equal(t, "0001:00000000\tCODE\tSystem\t256\n", buf.String())
	})

	t.Run("other kinds as TSV", func(t *testing.T) {
		var buf bytes.Buffer
		writeRecords(&buf, filterRecords(session, core.KindUnit, ""), true)
		assert.Equal(t, "u1\t00401000\tSystem\n", buf.String())
	})
}

func TestWriteTree(t *testing.T) {
	session := loadedSession(t)
	roots := session.ClassTree()

	var collapsed bytes.Buffer
	writeTree(&collapsed, core.Flatten(roots, core.NewExpansion()), "")
	assert.Equal(t, 2, strings.Count(collapsed.String(), "\n"))

	filtered := core.Filter(roots, "comp")
	exp := core.NewExpansion()
	exp.ExpandAll(filtered)
	var buf bytes.Buffer
	writeTree(&buf, core.Flatten(filtered, exp), "comp")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "  TObject"))
	assert.True(t, strings.HasPrefix(lines[2], "*     TComponent"))
}

func TestReplay(t *testing.T) {
	session := loadedSession(t)
	edits := []core.Edit{
		{Kind: core.ModString, ID: "s1", Value: "Hi"},
		{Kind: core.ModString, ID: "s1", Value: "Hi"},
		{Kind: core.ModString, ID: "s2", Value: "Earth"},
	}

	require.NoError(t, replay(session, edits, 1))

	records, cursor := session.History()
	assert.Len(t, records, 2)
	assert.Equal(t, 0, cursor)
	v, _ := session.StringValue("s2")
	assert.Equal(t, "World", v)

	var buf bytes.Buffer
	writeJournal(&buf, session)
	assert.Contains(t, buf.String(), "cursor 0 of 2, dirty=true")

	err := replay(session, []core.Edit{{Kind: core.ModString, ID: "missing", Value: "x"}}, 0)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFatal(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	stderr, exit = &buf, func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = os.Stderr, os.Exit })

	fatal("Error opening session", core.ErrNotFound)

	assert.Equal(t, 1, code)
	assert.Equal(t, "idr: Error opening session: artifact not found\n", buf.String())
}
