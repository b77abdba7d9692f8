package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/serroba/qr-code-manager/internal/qrcode"
)

var errUnsafeName = errors.New("unsafe file name")

// FileStorage keeps QR code images as files in a single directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates dir if needed and returns a storage rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr directory: %w", err)
	}

	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", errUnsafeName, name)
	}

	if err := qrcode.CheckFilename(name); err != nil {
		return "", err
	}

	return filepath.Join(f.dir, name), nil
}

func (f *FileStorage) Save(_ context.Context, name string, png []byte) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return qrcode.ErrExists
		}

		return err
	}

	if _, err = file.Write(png); err != nil {
		_ = file.Close()
		_ = os.Remove(p)

		return err
	}

	return file.Close()
}

func (f *FileStorage) Load(_ context.Context, name string) ([]byte, error) {
	p, err := f.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, qrcode.ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

func (f *FileStorage) Exists(_ context.Context, name string) (bool, error) {
	p, err := f.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(p)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (f *FileStorage) Delete(_ context.Context, name string) error {
	p, err := f.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return qrcode.ErrNotFound
		}

		return err
	}

	return nil
}

func (f *FileStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	// ReadDir already sorts by name; keep the contract explicit.
	slices.Sort(names)

	return names, nil
}

// Ping reports whether the directory is still accessible.
func (f *FileStorage) Ping(_ context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", f.dir)
	}

	return nil
}

// Compile-time check.
var _ qrcode.Storage = (*FileStorage)(nil)
