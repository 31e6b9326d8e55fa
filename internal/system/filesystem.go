package system

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem handles file system operations
type FileSystem struct{}

// NewFileSystem creates a new FileSystem instance
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// EnsureDirectory creates a directory and any missing parents with the given permissions.
// If the directory already exists, it does nothing. A non-directory at path
// (or at any ancestor) fails with the underlying ENOTDIR path error.
func (fs *FileSystem) EnsureDirectory(path string, perms os.FileMode) error {
	if err := os.MkdirAll(path, perms); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// TruncateFile creates an empty file, or truncates an existing one to zero length.
// perms only apply when the file is created; an existing file keeps its mode.
func (fs *FileSystem) TruncateFile(path string, perms os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perms)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", path, cerr)
		}
	}()

	return nil
}

// FileExists checks if a regular file exists
func (fs *FileSystem) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// DirectoryExists checks if a directory exists
func (fs *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// GetFileSize returns the size of a file in bytes
func (fs *FileSystem) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	return info.Size(), nil
}

// ResolveRoot returns the absolute, cleaned form of a target root directory
func ResolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return abs, nil
}
