// Package mmapfile provides the read-only memory map primitive used by the
// memory-mapped scan entry points. A mapping is held only for the duration
// of one scan and released on every exit path.
package mmapfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only memory-mapped view of a regular file.
type File struct {
	data []byte
}

// Open maps path read-only and returns the mapping. An empty file yields a
// valid File with no data: mapping zero bytes is an error on Linux, so it
// is skipped entirely.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()
	if size == 0 {
		return &File{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &File{data: data}, nil
}

// Bytes returns the mapped contents. The slice is valid until Close.
func (m *File) Bytes() []byte {
	return m.data
}

// Len returns the length of the mapping in bytes.
func (m *File) Len() int {
	return len(m.data)
}

// Close unmaps the file. Safe to call on an empty mapping and more than
// once; after the first call Bytes must no longer be used.
func (m *File) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
