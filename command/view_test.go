package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gridcore/store"
)

func TestSetViewport(t *testing.T) {
	st := store.New(nil)
	require.NoError(t, st.Replace(store.FieldViewport, "desktop"))

	cmd := NewSetViewport(st, "desktop", "mobile")
	require.NoError(t, cmd.Redo())
	assert.Equal(t, "mobile", st.Get().CurrentViewport)

	require.NoError(t, cmd.Undo())
	assert.Equal(t, "desktop", st.Get().CurrentViewport)
	assert.Equal(t, "Switch viewport to mobile", cmd.Description())
}

func TestToggleGrid(t *testing.T) {
	st := store.New(nil)

	cmd := NewToggleGrid(st, false)
	require.NoError(t, cmd.Redo())
	assert.True(t, st.Get().ShowGrid)

	require.NoError(t, cmd.Undo())
	assert.False(t, st.Get().ShowGrid)
	assert.Equal(t, "Show grid", cmd.Description())

	assert.Equal(t, "Hide grid", NewToggleGrid(st, true).Description())
}
