package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is the durable Driver: one JSON file per key under a root directory.
// Writes go through a temp file plus rename so a crashed write leaves the
// previous value intact rather than a truncated one.
type File struct {
	root string
}

func NewFile(root string) (*File, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("store/file: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store/file: mkdir %s: %w", root, err)
	}

	return &File{root: root}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.root, key+".json")
}

func (f *File) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (f *File) Set(key string, raw []byte) error {
	full := f.path(key)

	tmp, err := os.CreateTemp(f.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("store/file: temp %s: %w", key, err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store/file: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store/file: close %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store/file: rename %s: %w", key, err)
	}

	return nil
}

func (f *File) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store/file: remove %s: %w", key, err)
	}
	return nil
}
