package storage

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores the snapshot as a JSON document on the local disk.
// Before each overwrite the previous document is copied to a sibling backup
// file, and writes go through a temp file plus rename so a crash never leaves
// a truncated document behind.
type FileBackend struct {
	path   string
	backup string
}

// NewFileBackend returns a backend writing to path and keeping the previous
// version at path+backupSuffix.
func NewFileBackend(path, backupSuffix string) *FileBackend {
	return &FileBackend{path: path, backup: path + backupSuffix}
}

func (f *FileBackend) Name() string { return "file" }

// Path is the location of the primary document.
func (f *FileBackend) Path() string { return f.path }

// BackupPath is the location of the previous document.
func (f *FileBackend) BackupPath() string { return f.backup }

func (f *FileBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoData
	}
	return data, nil
}

func (f *FileBackend) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	prev, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		if err := writeAtomic(f.backup, prev); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	return writeAtomic(f.path, payload)
}

// writeAtomic writes data to a temp file in the target directory, syncs it,
// and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return err
	}
	return os.Rename(name, path)
}
