package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/idr/pkg/adapters/fs"
	"github.com/aretw0/idr/pkg/adapters/payload"
	"github.com/aretw0/idr/pkg/core"
)

const validPayload = `
loadedFile:
  name: app.exe
  path: /bin/app.exe
units:
  - id: u1
    address: "00401000"
    name: System
strings:
  - id: s1
    address: "00420000"
    value: Hello
classTree:
  - id: c1
    name: TObject
    children: []
`

const otherPayload = `
units:
  - id: u1
    address: "00401000"
    name: System
  - id: u2
    address: "00402000"
    name: SysUtils
`

const invalidPayload = `
units:
  - id: u1
    name: System
`

func writePayload(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	writePayload(t, path, validPayload)

	session := core.NewSession(core.Config{})
	loader := fs.NewLoader(session, fs.Config{Path: path, Strict: true})
	require.NoError(t, loader.Load(context.Background()))

	assert.Equal(t, 1, session.Counts()[core.KindUnit])
	recent := session.RecentFiles()
	require.Len(t, recent, 1)
	assert.Equal(t, "/bin/app.exe", recent[0].Path)

	state := loader.State().(fs.LoaderState)
	assert.Equal(t, 1, state.Reloads)
	assert.Zero(t, state.Failures)
	assert.Equal(t, "loader", loader.ComponentType())
}

func TestLoader_RecentFileFallsBackToPayloadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.yml")
	writePayload(t, path, otherPayload)

	session := core.NewSession(core.Config{})
	loader := fs.NewLoader(session, fs.Config{Path: path})
	require.NoError(t, loader.Load(context.Background()))

	recent := session.RecentFiles()
	require.Len(t, recent, 1)
	assert.Equal(t, loader.Path(), recent[0].Path)
	assert.Equal(t, "other.yml", recent[0].Name)
}

func TestLoader_InvalidPayloadKeepsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	writePayload(t, path, validPayload)

	session := core.NewSession(core.Config{})
	loader := fs.NewLoader(session, fs.Config{Path: path})
	require.NoError(t, loader.Load(context.Background()))

	writePayload(t, path, invalidPayload)
	err := loader.Load(context.Background())
	require.ErrorIs(t, err, core.ErrInvalidPayload)

	f, ok := session.File()
	require.True(t, ok)
	assert.Equal(t, "app.exe", f.Name)

	state := loader.State().(fs.LoaderState)
	assert.Equal(t, 1, state.Failures)
	assert.NotEmpty(t, state.LastError)
}

func TestReadPayload_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := fs.ReadPayload(filepath.Join(dir, "session.txt"), false)
	assert.ErrorIs(t, err, payload.ErrUnsupportedFormat)

	_, err = fs.ReadPayload(filepath.Join(dir, "missing.json"), false)
	assert.Error(t, err)

	sub := filepath.Join(dir, "dir.json")
	require.NoError(t, os.Mkdir(sub, 0755))
	_, err = fs.ReadPayload(sub, false)
	assert.ErrorIs(t, err, fs.ErrNotRegularFile)

	bad := filepath.Join(dir, "bad.json")
	writePayload(t, bad, "{not json")
	_, err = fs.ReadPayload(bad, false)
	assert.Error(t, err)
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loader := fs.NewLoader(core.NewSession(core.Config{}), fs.Config{Path: "x.json"})
	assert.ErrorIs(t, loader.Load(ctx), context.Canceled)
}

func TestJournalExport(t *testing.T) {
	session := core.NewSession(core.Config{})
	session.Append(core.Modification{Kind: core.ModString, Target: "s1", OriginalValue: "Hello", NewValue: "Hi"})
	session.Append(core.Modification{Kind: core.ModString, Target: "s1", OriginalValue: "Hello", NewValue: "Hey"})
	session.Undo()

	for _, name := range []string{"out/journal.json", "out/journal.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, fs.WriteJournal(path, session))

			j, err := fs.ReadJournal(path, true)
			require.NoError(t, err)
			assert.Equal(t, 0, j.Cursor)
			require.Len(t, j.Modifications, 2)
			assert.Equal(t, "Hey", j.Modifications[1].NewValue)
		})
	}

	err := fs.WriteJournal(filepath.Join(t.TempDir(), "journal.toml"), session)
	assert.ErrorIs(t, err, payload.ErrUnsupportedFormat)
}

func TestReadEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.json")
	writePayload(t, path, `[{"type": "string", "id": "s1", "value": "Hi"}]`)

	edits, err := fs.ReadEdits(path, true)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, core.ModString, edits[0].Kind)
}
