package hier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDataset_CreatesIntermediateGroups(t *testing.T) {
	root := NewGroup("")
	ds, err := root.CreateDataset("run.0/sweep.0/channel.0/ydata")
	require.NoError(t, err)
	assert.Equal(t, "ydata", ds.Name())
	assert.False(t, ds.IsGroup())

	n, ok := Lookup(root, "run.0/sweep.0")
	require.True(t, ok)
	assert.True(t, n.IsGroup())

	n, ok = Lookup(root, "run.0/sweep.0/channel.0/ydata")
	require.True(t, ok)
	assert.Same(t, ds, n)
}

func TestCreateDataset_RejectsExisting(t *testing.T) {
	root := NewGroup("")
	_, err := root.CreateDataset("a/b")
	require.NoError(t, err)
	_, err = root.CreateDataset("a/b")
	require.Error(t, err)
}

func TestCreateGroup_ThroughDatasetFails(t *testing.T) {
	root := NewGroup("")
	_, err := root.CreateDataset("a/b")
	require.NoError(t, err)
	_, err = root.CreateGroup("a/b/c")
	require.ErrorIs(t, err, ErrNotAGroup)
}

func TestCreateGroup_ReusesExisting(t *testing.T) {
	root := NewGroup("")
	g1, err := root.CreateGroup("x/y")
	require.NoError(t, err)
	g2, err := root.CreateGroup("x/y")
	require.NoError(t, err)
	assert.Same(t, g1, g2)
}

func TestLookup_Missing(t *testing.T) {
	root := NewGroup("")
	_, ok := Lookup(root, "nope")
	assert.False(t, ok)
}

func TestWalk_DepthFirstLexicographic(t *testing.T) {
	root := NewGroup("")
	for _, p := range []string{"b/z", "b/a", "a/q", "c"} {
		_, err := root.CreateDataset(p)
		require.NoError(t, err)
	}
	var visited []string
	Walk(root, func(path string, n Node) bool {
		visited = append(visited, path)
		return true
	})
	assert.Equal(t, []string{"a", "a/q", "b", "b/a", "b/z", "c"}, visited)
}

func TestWalk_StopsEarly(t *testing.T) {
	root := NewGroup("")
	for _, p := range []string{"a", "b", "c"} {
		_, err := root.CreateDataset(p)
		require.NoError(t, err)
	}
	var visited []string
	Walk(root, func(path string, n Node) bool {
		visited = append(visited, path)
		return len(visited) < 2
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestIsLeaf(t *testing.T) {
	root := NewGroup("")
	ds, err := root.CreateDataset("g/d")
	require.NoError(t, err)
	g, ok := Lookup(root, "g")
	require.True(t, ok)
	empty, err := root.CreateGroup("empty")
	require.NoError(t, err)

	assert.True(t, IsLeaf(ds))
	assert.False(t, IsLeaf(g))
	assert.True(t, IsLeaf(empty))
}

func TestSplitJoinPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitPath("/a//b/"))
	assert.Empty(t, SplitPath(""))
	assert.Equal(t, "a/b", JoinPath([]string{"a", "b"}))
}
