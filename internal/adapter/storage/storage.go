// Package storage contains the default [domain.Storage] implementation.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/jsondb/domain"
)

// Storage implements domain.Storage.
type Storage struct{}

// NewStorage returns a new implementation of domain.Storage.
func NewStorage() domain.Storage {
	return &Storage{}
}

// EnsureDirectoryExists implements domain.Storage.
func (d *Storage) EnsureDirectoryExists(dir string, mode os.FileMode) error {
	return os.MkdirAll(dir, mode)
}

// Exists implements domain.Storage.
func (d *Storage) Exists(filename string) (bool, error) {
	_, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadFile implements domain.Storage.
func (d *Storage) ReadFile(ctx context.Context, filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(contextio.NewReader(ctx, f))
}

// WriteFile implements domain.Storage. The data is written to a temporary
// file first, fsynced, then renamed over the destination so a crash mid-write
// never leaves a half-written record behind.
func (d *Storage) WriteFile(ctx context.Context, filename string, data []byte, fileMode os.FileMode, dirMode os.FileMode) error {
	tempFilename := filename + "~"

	if err := d.writeFileData(ctx, tempFilename, data, fileMode); err != nil {
		return err
	}

	if err := d.flushToStorage(tempFilename, false, fileMode); err != nil {
		return err
	}

	if err := os.Rename(tempFilename, filename); err != nil {
		return err
	}

	return d.flushToStorage(filepath.Dir(filename), true, dirMode)
}

func (d *Storage) writeFileData(ctx context.Context, filename string, data []byte, mode os.FileMode) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = contextio.NewWriter(ctx, f).Write(data)
	return err
}

func (d *Storage) flushToStorage(filename string, isDir bool, mode os.FileMode) error {
	flags := os.O_RDWR
	if isDir {
		flags = os.O_RDONLY
	}

	fileHandle, err := os.OpenFile(filename, flags, mode)
	if err != nil {
		return err
	}

	if err := fileHandle.Sync(); err != nil {
		fileHandle.Close()
		return err
	}

	return fileHandle.Close()
}

// Remove implements domain.Storage.
func (d *Storage) Remove(filename string) error {
	return os.Remove(filename)
}

// ListFiles implements domain.Storage.
func (d *Storage) ListFiles(dir string, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
