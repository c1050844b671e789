package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxLineSize is the longest data file line LoadFile accepts
const MaxLineSize = 1024 * 1024

// LoadFile reads the data file at path and decodes it into a new store
// A missing or unreadable file is an error, never an empty store.
func LoadFile(path string, opts LoadOptions) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("failed to read data file %s:%d: line longer than %d bytes: %w",
				path, len(lines)+1, MaxLineSize, err)
		}
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	if opts.File == "" {
		opts.File = path
	}
	s, err := LoadAll(lines, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load flights: %w", err)
	}
	return s, nil
}

// SaveFile overwrites path with every flight, one line each
func (s *Store) SaveFile(path string) error {
	var b strings.Builder
	for _, line := range s.SerializeAll() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", path, err)
	}
	return nil
}
