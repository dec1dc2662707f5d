package policies

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTableGetSet(t *testing.T) {
	q := NewQTable()

	assert.Equal(t, 0.5, q.Get("s", "a", 0.5))
	assert.True(t, q.HasState("s"))
	assert.False(t, q.HasState("other"))

	q.Set("s", "a", 2)
	assert.Equal(t, 2.0, q.Get("s", "a", 0))
	assert.Equal(t, map[string]float64{"a": 2}, q.Values("s"))
}

func TestQTableMax(t *testing.T) {
	q := NewQTable()
	q.Set("s", "a", 1)
	q.Set("s", "b", 3)
	q.Set("s", "c", 2)

	action, val := q.Max("s", 0)
	assert.Equal(t, "b", action)
	assert.Equal(t, 3.0, val)

	action, val = q.Max("unseen", -1)
	assert.Equal(t, "", action)
	assert.Equal(t, -1.0, val)
}

func TestQTableMaxAmong(t *testing.T) {
	q := NewQTable()
	q.Set("s", "a", 1)
	q.Set("s", "b", 3)

	// b is not available, unseen c defaults to 0
	action, val := q.MaxAmong("s", []string{"a", "c"}, 0)
	assert.Equal(t, "a", action)
	assert.Equal(t, 1.0, val)

	action, _ = q.MaxAmong("s", nil, 0)
	assert.Equal(t, "", action)
}

func TestQTableRecordRead(t *testing.T) {
	q := NewQTable()
	q.Set("s", "a", 1.5)
	q.Set("s", "b", -2)

	path := filepath.Join(t.TempDir(), "qtable")
	require.NoError(t, q.Record(path))

	loaded := NewQTable()
	require.NoError(t, loaded.Read(path+".json"))
	assert.Equal(t, q.Values("s"), loaded.Values("s"))
}
