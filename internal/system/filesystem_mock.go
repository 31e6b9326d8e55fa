package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Operation is a single mutating call recorded by MockFileSystem.
type Operation struct {
	Kind  string // "mkdir" or "truncate"
	Path  string
	Perms os.FileMode
}

// MockFileSystem is a mock of the FileSystem for testing purposes.
// It keeps files and directories in memory, records mutating operations
// and implements FileSystemManager.
type MockFileSystem struct {
	mu         sync.Mutex
	Operations []Operation
	// Files maps a file path to its size; Dirs holds every directory.
	Files map[string]int64
	Dirs  map[string]bool
	// FailOn maps a path to the error returned when that path is touched.
	FailOn map[string]error
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string]int64),
		Dirs:   make(map[string]bool),
		FailOn: make(map[string]error),
	}
}

// EnsureDirectory records a directory creation along with its ancestors.
func (m *MockFileSystem) EnsureDirectory(path string, perms os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("mkdir", path, perms); err != nil {
		return err
	}
	for dir := path; !m.Dirs[dir]; dir = filepath.Dir(dir) {
		if _, isFile := m.Files[dir]; isFile {
			return fmt.Errorf("failed to create directory %s: %s is not a directory", path, dir)
		}
		m.Dirs[dir] = true
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return nil
}

// TruncateFile records a file creation and sets its size to zero.
func (m *MockFileSystem) TruncateFile(path string, perms os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("truncate", path, perms); err != nil {
		return err
	}
	if m.Dirs[path] {
		return fmt.Errorf("failed to create file %s: is a directory", path)
	}
	m.Files[path] = 0
	return nil
}

// FileExists reports whether a file was created or seeded at path.
func (m *MockFileSystem) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailOn[path]; ok {
		return false, err
	}
	_, ok := m.Files[path]
	return ok, nil
}

// DirectoryExists reports whether a directory was created or seeded at path.
func (m *MockFileSystem) DirectoryExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailOn[path]; ok {
		return false, err
	}
	return m.Dirs[path], nil
}

// GetFileSize returns the recorded size of a file.
func (m *MockFileSystem) GetFileSize(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailOn[path]; ok {
		return 0, err
	}
	size, ok := m.Files[path]
	if !ok {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, os.ErrNotExist)
	}
	return size, nil
}

// record must be called with m.mu held.
func (m *MockFileSystem) record(kind, path string, perms os.FileMode) error {
	if err, ok := m.FailOn[path]; ok {
		return err
	}
	m.Operations = append(m.Operations, Operation{Kind: kind, Path: path, Perms: perms})
	return nil
}

// Paths returns the recorded paths of the given kind, in call order.
func (m *MockFileSystem) Paths(kind string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var paths []string
	for _, op := range m.Operations {
		if op.Kind == kind {
			paths = append(paths, op.Path)
		}
	}
	return paths
}
