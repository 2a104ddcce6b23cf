// Package blob defines the byte-buffer boundary the codec core reads and
// writes through, keeping file-system concerns out of internal/character
// and internal/catalog (spec §1: "it emits byte buffers in return").
package blob

import (
	"fmt"
	"os"
	"path/filepath"
)

// Blob is a fully-materialized byte buffer source/sink. The core never
// streams; every decode reads a complete buffer and every encode produces
// one (spec §5: "buffers are fully materialized").
type Blob interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// File is a Blob backed by a path on disk.
type File struct {
	Path string
}

// NewFile returns a Blob reading/writing the given path.
func NewFile(path string) File {
	return File{Path: path}
}

func (f File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return data, nil
}

// Write performs an atomic (temp file + rename) write into f.Path.
func (f File) Write(data []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".d2edit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, f.Path, err)
	}
	return nil
}

// Bytes is an in-memory Blob, primarily for tests.
type Bytes struct {
	Data []byte
}

func (b *Bytes) Read() ([]byte, error) { return b.Data, nil }

func (b *Bytes) Write(data []byte) error {
	b.Data = append([]byte(nil), data...)
	return nil
}
