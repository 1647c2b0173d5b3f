package file

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MemFileStorage keeps whole files in memory. It exists for tests: a test
// wires it wherever a FileStorage is expected, then calls Export on teardown
// to dump the stored tree to a directory and audit the layout and contents.
type MemFileStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemFileStorage() *MemFileStorage {
	return &MemFileStorage{files: map[string][]byte{}}
}

func (fs *MemFileStorage) Exists(fileName string) (bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[path.Clean(fileName)]
	return ok, nil
}

func (fs *MemFileStorage) Open(fileName, encoding string) (io.ReadCloser, error) {
	fs.mu.RLock()
	data, ok := fs.files[path.Clean(fileName)]
	fs.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("no such file:%v", fileName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (fs *MemFileStorage) Create(fileName, encoding string) (io.WriteCloser, error) {
	return &memFile{fs: fs, name: path.Clean(fileName)}, nil
}

//Bytes the current contents of a stored file
func (fs *MemFileStorage) Bytes(fileName string) ([]byte, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	data, ok := fs.files[path.Clean(fileName)]
	return data, ok
}

//Names the stored file names, sorted
func (fs *MemFileStorage) Names() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	names := make([]string, 0, len(fs.files))
	for name := range fs.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export writes every stored file under dir, creating subdirectories to
// mirror the stored names.
func (fs *MemFileStorage) Export(dir string) error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	for name, data := range fs.files {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "export %v", name)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return errors.Wrapf(err, "export %v", name)
		}
	}
	return nil
}

// memFile buffers writes and commits the file on Close. A file is not
// visible to readers until closed.
type memFile struct {
	fs   *MemFileStorage
	name string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.files[f.name] = append([]byte(nil), f.buf.Bytes()...)
	return nil
}
