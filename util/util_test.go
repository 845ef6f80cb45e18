package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"a.mid", "b.midi", "c.txt", "sub/d.mid"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	assert := assert.New(t)
	paths := GatherAllMidiPaths(dir, 0)
	assert.Equal(3, len(paths))

	paths = GatherAllMidiPaths(dir, 2)
	assert.Equal(2, len(paths))

	single := GatherAllMidiPaths(filepath.Join(dir, "a.mid"), 0)
	assert.Equal([]string{filepath.Join(dir, "a.mid")}, single)
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}
