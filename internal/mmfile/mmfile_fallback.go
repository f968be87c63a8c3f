//go:build !unix

// Package mmfile memory-maps the registry blob stage A produces, with a
// plain read fallback on platforms without a POSIX mmap.
package mmfile

import "os"

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
