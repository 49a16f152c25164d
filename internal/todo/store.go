package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Store reads and writes the list file at a fixed path.
type Store struct {
	path   string
	logger *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a Store for the file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the list from disk. A missing file is created holding an empty
// list; an empty file loads as an empty list.
func (s *Store) Load() ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("todo file missing, creating", "path", s.path)
			if err := s.Save(nil); err != nil {
				return nil, err
			}
			return []Item{}, nil
		}
		return nil, &FileError{Op: "read", Path: s.path, Err: err}
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		s.logger.Debug("todo file empty", "path", s.path)
		return []Item{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if err := validateDocument(s.path, doc); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if f.List == nil {
		f.List = []Item{}
	}

	s.logger.Debug("loaded todo file", "path", s.path, "items", len(f.List))
	return f.List, nil
}

// Save overwrites the file with the full list, 2-space indented with a
// trailing newline. The write goes to a temp file that is renamed into place.
func (s *Store) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}

	data, err := json.MarshalIndent(File{List: items}, "", "  ")
	if err != nil {
		return &FileError{Op: "marshal", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data); err != nil {
		return &FileError{Op: "write", Path: s.path, Err: err}
	}

	s.logger.Debug("saved todo file", "path", s.path, "items", len(items))
	return nil
}

// writeFileAtomic replaces the file at path with data. Symlinks are followed
// so the link survives and its target receives the write; an existing
// file's permissions are kept.
func writeFileAtomic(path string, data []byte) error {
	target, err := resolveSymlinks(path)
	if err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// maxSymlinkHops bounds link resolution so a cycle fails instead of spinning.
const maxSymlinkHops = 40

// resolveSymlinks follows path through any chain of symlinks, including a
// dangling final link, and returns the file the chain points at.
func resolveSymlinks(path string) (string, error) {
	for i := 0; i < maxSymlinkHops; i++ {
		info, err := os.Lstat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		dest, err := os.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", fmt.Errorf("too many levels of symbolic links: %s", path)
}
