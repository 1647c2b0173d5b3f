package file

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, fs FileStorage, name, content string) {
	t.Helper()
	w, err := fs.Create(name, DefaultEncoding)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, fs FileStorage, name string) string {
	t.Helper()
	r, err := fs.Open(name, DefaultEncoding)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestLocalFileStorage(t *testing.T) {
	fs := &LocalFileStorage{}
	name := filepath.Join(t.TempDir(), "nested", "dir", "data.csv")

	ok, err := fs.Exists(name)
	require.NoError(t, err)
	assert.False(t, ok)

	writeAll(t, fs, name, "a,b\n1,2\n")

	ok, err = fs.Exists(name)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a,b\n1,2\n", readAll(t, fs, name))
}

func TestScoped(t *testing.T) {
	mem := NewMemFileStorage()
	child := Scoped(mem, "landing/2026-03-14")
	grandchild := Scoped(child, "part-0")

	writeAll(t, child, "trades.csv", "x")
	writeAll(t, grandchild, "chunk.csv", "y")

	assert.Equal(t, []string{
		"landing/2026-03-14/part-0/chunk.csv",
		"landing/2026-03-14/trades.csv",
	}, mem.Names())

	ok, err := child.Exists("trades.csv")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "y", readAll(t, grandchild, "chunk.csv"))
}

func TestMemFileStorage(t *testing.T) {
	mem := NewMemFileStorage()

	_, err := mem.Open("absent.txt", DefaultEncoding)
	assert.Error(t, err)

	// A file is invisible until its writer is closed.
	w, err := mem.Create("pending.txt", DefaultEncoding)
	require.NoError(t, err)
	_, err = w.Write([]byte("half"))
	require.NoError(t, err)
	ok, err := mem.Exists("pending.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, w.Close())
	ok, err = mem.Exists("pending.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "half", readAll(t, mem, "pending.txt"))
}

func TestMemFileStorage_Export(t *testing.T) {
	mem := NewMemFileStorage()
	writeAll(t, mem, "a.txt", "top")
	writeAll(t, mem, "sub/b.txt", "nested")

	dir := t.TempDir()
	require.NoError(t, mem.Export(dir))

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(data))
}
