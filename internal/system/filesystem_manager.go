package system

import "os"

// FileSystemManager defines the interface for file system operations.
// This allows for mocking the file system in tests.
type FileSystemManager interface {
	EnsureDirectory(path string, perms os.FileMode) error
	TruncateFile(path string, perms os.FileMode) error
	FileExists(path string) (bool, error)
	DirectoryExists(path string) (bool, error)
	GetFileSize(path string) (int64, error)
}
