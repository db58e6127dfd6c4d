package nfsmount

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/treeslice/internal/hier"
)

func newTestHierarchy(t *testing.T) *hier.Group {
	t.Helper()
	root := hier.NewGroup("")
	for _, p := range []string{
		"trial.0/probe.0/data",
		"trial.0/probe.1/data",
		"trial.1/probe.0/data",
	} {
		ds, err := root.CreateDataset(p)
		require.NoError(t, err)
		ds.SetShape([]int64{1000})
		ds.SetDtype("float64")
		ds.SetAttrs(hier.Map(map[string]hier.Value{"fs": hier.Int(30000)}))
	}
	return root
}

func TestStatRoot(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	info, err := hfs.Stat("/")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "/", info.Name())
}

func TestStatDocumentJSON(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	info, err := hfs.Stat("/_document.json")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, "_document.json", info.Name())
	assert.True(t, info.Size() > 0)
}

func TestStatGroupAndDataset(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	info, err := hfs.Stat("/trial.0")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "trial.0", info.Name())

	info, err = hfs.Stat("/trial.0/probe.1/data")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.True(t, info.Size() > 0)
}

func TestStatNotFound(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	_, err := hfs.Stat("/nonexistent")
	assert.True(t, os.IsNotExist(err))
}

func TestReadDirRoot(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	entries, err := hfs.ReadDir("/")
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.Equal(t, []string{"_document.json", "trial.0", "trial.1"}, names)
}

func TestReadDirNotADirectory(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	_, err := hfs.ReadDir("/trial.0/probe.0/data")
	require.Error(t, err)
}

func TestOpenDataset(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	f, err := hfs.Open("/trial.0/probe.0/data")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dtype"`)
	assert.Contains(t, string(data), "float64")
	assert.Contains(t, string(data), "30000")
}

func TestOpenGroupFails(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	_, err := hfs.Open("/trial.0")
	require.Error(t, err)
}

func TestWritesRejected(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))

	_, err := hfs.Create("/new")
	assert.ErrorIs(t, err, errReadOnly)
	assert.ErrorIs(t, hfs.Remove("/trial.0"), errReadOnly)
	assert.ErrorIs(t, hfs.MkdirAll("/x", 0o755), errReadOnly)

	_, err = hfs.OpenFile("/trial.0/probe.0/data", os.O_WRONLY, 0)
	assert.ErrorIs(t, err, errReadOnly)
}

func TestServerStartsAndStops(t *testing.T) {
	hfs := NewHierFS(newTestHierarchy(t))
	srv, err := NewServer(hfs)
	require.NoError(t, err)
	assert.True(t, srv.Port() > 0)
	require.NoError(t, srv.Close())
}
