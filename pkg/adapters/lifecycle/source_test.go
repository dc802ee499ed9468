package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/idr/pkg/adapters/lifecycle"
	"github.com/aretw0/idr/pkg/core"
)

func TestSource_BridgesSessionEvents(t *testing.T) {
	session := core.NewSession(core.Config{})
	src := lifecycle.NewSource(session, "s*")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, src.Start(ctx))

	session.Append(core.Modification{Kind: core.ModName, Target: "n1", NewValue: "skipped"})
	session.Append(core.Modification{Kind: core.ModString, Target: "s1", NewValue: "Hi"})

	select {
	case e := <-src.Events():
		ce, ok := e.(core.Event)
		require.True(t, ok)
		assert.Equal(t, core.EventEdit, ce.Type)
		assert.Equal(t, "s1", ce.Target)
		assert.Contains(t, e.String(), "s1")
	case <-ctx.Done():
		t.Fatal("timed out waiting for bridged event")
	}
}

func TestSource_InvalidPattern(t *testing.T) {
	src := lifecycle.NewSource(core.NewSession(core.Config{}), "[")
	err := src.Start(context.Background())
	assert.ErrorIs(t, err, core.ErrInvalidPattern)
}

func TestSource_ClosesOnCancel(t *testing.T) {
	src := lifecycle.NewSource(core.NewSession(core.Config{}), "")
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}
