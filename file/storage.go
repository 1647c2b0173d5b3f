// Package file abstracts where serialized record files live: local disk, an
// FTP endpoint, or memory for tests. Storages deal in whole files; records
// inside them are handled by the serializer package.
package file

import (
	"io"
	"os"
	"path"
	"path/filepath"
)

// FileStorage is a named-file store. Encoding is advisory: storages that
// cannot transcode may ignore it.
type FileStorage interface {
	Exists(fileName string) (bool, error)
	Open(fileName, encoding string) (io.ReadCloser, error)
	Create(fileName, encoding string) (io.WriteCloser, error)
}

// LocalFileStorage stores files on the local filesystem. Create makes parent
// directories as needed.
type LocalFileStorage struct {
}

func (fs *LocalFileStorage) Exists(fileName string) (bool, error) {
	_, err := os.Stat(fileName)
	if err != nil && os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (fs *LocalFileStorage) Open(fileName, encoding string) (io.ReadCloser, error) {
	return os.Open(fileName)
}

func (fs *LocalFileStorage) Create(fileName, encoding string) (io.WriteCloser, error) {
	if dir := filepath.Dir(fileName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(fileName)
}

// Scoped returns a child storage that resolves every file name under
// basePath on the parent. Nesting Scoped calls stacks the paths. Names are
// joined with forward slashes, which every storage here accepts.
func Scoped(parent FileStorage, basePath string) FileStorage {
	if child, ok := parent.(*scopedStorage); ok {
		return &scopedStorage{parent: child.parent, basePath: path.Join(child.basePath, basePath)}
	}
	return &scopedStorage{parent: parent, basePath: basePath}
}

type scopedStorage struct {
	parent   FileStorage
	basePath string
}

func (fs *scopedStorage) resolve(fileName string) string {
	return path.Join(fs.basePath, fileName)
}

func (fs *scopedStorage) Exists(fileName string) (bool, error) {
	return fs.parent.Exists(fs.resolve(fileName))
}

func (fs *scopedStorage) Open(fileName, encoding string) (io.ReadCloser, error) {
	return fs.parent.Open(fs.resolve(fileName), encoding)
}

func (fs *scopedStorage) Create(fileName, encoding string) (io.WriteCloser, error) {
	return fs.parent.Create(fs.resolve(fileName), encoding)
}
