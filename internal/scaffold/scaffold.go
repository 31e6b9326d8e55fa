// Package scaffold creates the fixed project skeleton from the layout table:
// empty placeholder files (truncated if present) and the empty test directories.
package scaffold

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/layout"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/system"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/ui"
)

const (
	// FileCreatedMessage prefixes the stdout line printed for each file
	FileCreatedMessage = "File created:"
	// DirCreatedMessage prefixes the stdout line printed for each test directory
	DirCreatedMessage = "Directory created:"
)

// Scaffolder handles creation of the project skeleton under a root directory
type Scaffolder struct {
	fs       system.FileSystemManager
	ui       *ui.UI
	root     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewScaffolder creates a new Scaffolder instance
func NewScaffolder(fs system.FileSystemManager, ui *ui.UI, root string, dirPerm, filePerm os.FileMode) *Scaffolder {
	return &Scaffolder{
		fs:       fs,
		ui:       ui,
		root:     root,
		dirPerm:  dirPerm,
		filePerm: filePerm,
	}
}

// Root returns the directory the skeleton is created in
func (s *Scaffolder) Root() string {
	return s.root
}

func (s *Scaffolder) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// CreateFileStructure creates every layout file, then every test directory.
// The first failure aborts the pass; entries created before it are kept.
func (s *Scaffolder) CreateFileStructure() error {
	for _, rel := range layout.Files() {
		if dir := path.Dir(rel); dir != "." {
			if err := s.fs.EnsureDirectory(s.abs(dir), s.dirPerm); err != nil {
				return err
			}
		}

		if err := s.fs.TruncateFile(s.abs(rel), s.filePerm); err != nil {
			return err
		}

		s.ui.Created("%s %s", FileCreatedMessage, filepath.FromSlash(rel))
	}

	for _, rel := range layout.TestDirs() {
		if err := s.fs.EnsureDirectory(s.abs(rel), s.dirPerm); err != nil {
			return err
		}

		s.ui.Created("%s %s", DirCreatedMessage, filepath.FromSlash(rel))
	}

	return nil
}

// PendingTruncations returns the layout files that exist with content a run would discard
func (s *Scaffolder) PendingTruncations() ([]string, error) {
	var pending []string
	for _, rel := range layout.Files() {
		exists, err := s.fs.FileExists(s.abs(rel))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", rel, err)
		}
		if !exists {
			continue
		}
		size, err := s.fs.GetFileSize(s.abs(rel))
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", rel, err)
		}
		if size > 0 {
			pending = append(pending, rel)
		}
	}
	return pending, nil
}

// Check is the verification result for one layout entry
type Check struct {
	Path   string
	Dir    bool
	OK     bool
	Size   int64
	Reason string
}

// Verify checks that the skeleton exists under the root.
// It returns one Check per entry and an error if any entry is missing or has the wrong type.
func (s *Scaffolder) Verify() ([]Check, error) {
	var checks []Check

	for _, rel := range layout.Files() {
		checks = append(checks, s.checkFile(rel))
	}
	dirs := append(layout.ImpliedDirs(), layout.TestDirs()...)
	for _, rel := range dirs {
		checks = append(checks, s.checkDir(rel))
	}

	failed := 0
	for _, c := range checks {
		if !c.OK {
			failed++
		}
	}
	if failed > 0 {
		return checks, fmt.Errorf("%d of %d layout entries failed verification under %s", failed, len(checks), s.root)
	}
	return checks, nil
}

func (s *Scaffolder) checkFile(rel string) Check {
	c := Check{Path: rel}
	path := s.abs(rel)

	isFile, err := s.fs.FileExists(path)
	if err != nil {
		c.Reason = err.Error()
		return c
	}
	if !isFile {
		isDir, err := s.fs.DirectoryExists(path)
		switch {
		case err != nil:
			c.Reason = err.Error()
		case isDir:
			c.Reason = "not a regular file"
		default:
			c.Reason = "missing"
		}
		return c
	}

	size, err := s.fs.GetFileSize(path)
	if err != nil {
		c.Reason = err.Error()
		return c
	}
	c.OK = true
	c.Size = size
	return c
}

func (s *Scaffolder) checkDir(rel string) Check {
	c := Check{Path: rel, Dir: true}
	path := s.abs(rel)

	isDir, err := s.fs.DirectoryExists(path)
	if err != nil {
		c.Reason = err.Error()
		return c
	}
	if isDir {
		c.OK = true
		return c
	}

	isFile, err := s.fs.FileExists(path)
	switch {
	case err != nil:
		c.Reason = err.Error()
	case isFile:
		c.Reason = "not a directory"
	default:
		c.Reason = "missing"
	}
	return c
}
