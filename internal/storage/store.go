package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store is a flat blob store under a single root directory. Artifact
// names are derived from sanitized upload names and task ids; uniqueness
// across tasks is by convention only and is not enforced here.
type Store struct {
	root string
}

// New creates the root directory if needed and returns a Store.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Path returns the on-disk path for a blob name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Save writes the reader's contents to a blob, replacing any existing
// blob of the same name, and returns its path.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	path := s.Path(name)

	dest, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(dest, r); err != nil {
		dest.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// Exists reports whether a blob with the given name is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Open opens a blob for reading.
func (s *Store) Open(name string) (*os.File, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
