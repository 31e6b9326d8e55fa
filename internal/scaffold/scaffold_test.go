package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/layout"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/system"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/ui"
)

func init() {
	color.NoColor = true
}

func newTestScaffolder(t *testing.T, root string) (*Scaffolder, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	u := ui.NewWithWriters(&stdout, &bytes.Buffer{})
	return NewScaffolder(system.NewFileSystem(), u, root, 0755, 0644), &stdout
}

// writeFile creates a file under dir with the given relative name and content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func assertSkeleton(t *testing.T, root string) {
	t.Helper()
	for _, rel := range layout.Files() {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err, "file %s should exist", rel)
		assert.True(t, info.Mode().IsRegular(), "%s should be a regular file", rel)
		assert.Zero(t, info.Size(), "%s should be empty", rel)
	}
	for _, rel := range layout.TestDirs() {
		p := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		require.NoError(t, err, "directory %s should exist", rel)
		assert.True(t, info.IsDir(), "%s should be a directory", rel)

		entries, err := os.ReadDir(p)
		require.NoError(t, err)
		assert.Empty(t, entries, "%s should be empty", rel)
	}
}

func TestCreateFileStructureFromEmptyDir(t *testing.T) {
	root := t.TempDir()
	s, _ := newTestScaffolder(t, root)

	require.NoError(t, s.CreateFileStructure())
	assertSkeleton(t, root)
}

func TestCreateFileStructureOutput(t *testing.T) {
	root := t.TempDir()
	s, stdout := newTestScaffolder(t, root)

	require.NoError(t, s.CreateFileStructure())

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 25)

	files := layout.Files()
	for i, rel := range files {
		assert.Equal(t, "File created: "+filepath.FromSlash(rel), lines[i])
	}
	assert.Equal(t, "Directory created: "+filepath.FromSlash("tests/unit"), lines[len(files)])
	assert.Equal(t, "Directory created: "+filepath.FromSlash("tests/integration"), lines[len(files)+1])
}

func TestCreateFileStructureTruncatesExistingContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/config.js", "module.exports = { port: 3000 };\n")
	writeFile(t, root, ".env", "OPENAI_API_KEY=secret\n")

	s, _ := newTestScaffolder(t, root)
	require.NoError(t, s.CreateFileStructure())

	for _, rel := range []string{"config/config.js", ".env"} {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Zero(t, info.Size(), "%s should have been truncated", rel)
	}
}

func TestCreateFileStructureExistingParentDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "services"), 0o755))
	writeFile(t, root, "services/unrelated.js", "keep me")

	s, _ := newTestScaffolder(t, root)
	require.NoError(t, s.CreateFileStructure())
	assertSkeleton(t, root)

	// Files outside the layout are left alone
	content, err := os.ReadFile(filepath.Join(root, "services", "unrelated.js"))
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
}

func TestCreateFileStructureIdempotent(t *testing.T) {
	root := t.TempDir()
	s, stdout := newTestScaffolder(t, root)

	require.NoError(t, s.CreateFileStructure())
	first := stdout.String()

	writeFile(t, root, "app.js", "console.log('hi');\n")
	stdout.Reset()

	require.NoError(t, s.CreateFileStructure())
	assertSkeleton(t, root)
	assert.Equal(t, first, stdout.String(), "second run should print the same confirmations")
}

func TestCreateFileStructurePathCollision(t *testing.T) {
	root := t.TempDir()
	// A regular file where the services/ directory must go
	writeFile(t, root, "services", "not a directory")

	s, stdout := newTestScaffolder(t, root)
	err := s.CreateFileStructure()
	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.ENOTDIR), "want ENOTDIR in chain, got %v", err)

	// Everything before the first services/ entry exists; nothing after it was touched
	for _, rel := range []string{".env", "app.js", "routes/api.js"} {
		_, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.NoError(t, statErr, "%s should have been created before the failure", rel)
	}
	for _, rel := range []string{"utils/logger.js", "tests/unit"} {
		_, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.True(t, os.IsNotExist(statErr), "%s should not exist after the failure", rel)
	}

	assert.NotContains(t, stdout.String(), "services")
	assert.Equal(t, 12, strings.Count(stdout.String(), "\n"))
}

func TestCreateFileStructureOperationOrder(t *testing.T) {
	mock := system.NewMockFileSystem()
	s := NewScaffolder(mock, ui.NewWithWriter(&bytes.Buffer{}), "/project", 0750, 0600)

	require.NoError(t, s.CreateFileStructure())

	truncated := mock.Paths("truncate")
	require.Len(t, truncated, 23)
	assert.Equal(t, filepath.Join("/project", ".env"), truncated[0])
	assert.Equal(t, filepath.Join("/project", "utils", "constants.js"), truncated[22])

	// One mkdir per nested file plus the two test directories
	mkdirs := mock.Paths("mkdir")
	assert.Len(t, mkdirs, 18+2)
	assert.Equal(t, filepath.Join("/project", "tests", "integration"), mkdirs[len(mkdirs)-1])

	// Each directory is ensured before the file inside it
	var lastDir string
	for _, op := range mock.Operations {
		switch op.Kind {
		case "mkdir":
			lastDir = op.Path
			assert.Equal(t, os.FileMode(0750), op.Perms)
		case "truncate":
			if filepath.Dir(op.Path) != "/project" {
				assert.Equal(t, filepath.Dir(op.Path), lastDir, "parent of %s not ensured first", op.Path)
			}
			assert.Equal(t, os.FileMode(0600), op.Perms)
		}
	}
}

func TestCreateFileStructureStopsAtFirstFailure(t *testing.T) {
	mock := system.NewMockFileSystem()
	boom := errors.New("read-only file system")
	mock.FailOn[filepath.Join("/project", "models", "Report.js")] = boom

	var stdout bytes.Buffer
	s := NewScaffolder(mock, ui.NewWithWriters(&stdout, &bytes.Buffer{}), "/project", 0755, 0644)

	err := s.CreateFileStructure()
	require.ErrorIs(t, err, boom)

	assert.Len(t, mock.Paths("truncate"), 10)
	assert.Equal(t, 10, strings.Count(stdout.String(), "File created:"))
	assert.NotContains(t, stdout.String(), "Directory created:")
}

func TestPendingTruncations(t *testing.T) {
	root := t.TempDir()
	s, _ := newTestScaffolder(t, root)

	pending, err := s.PendingTruncations()
	require.NoError(t, err)
	assert.Empty(t, pending)

	writeFile(t, root, "package.json", `{"name":"analyzer"}`)
	writeFile(t, root, "utils/logger.js", "")
	writeFile(t, root, "README.md", "# Analyzer\n")

	pending, err = s.PendingTruncations()
	require.NoError(t, err)
	assert.Equal(t, []string{"package.json", "README.md"}, pending)
}

func TestVerify(t *testing.T) {
	root := t.TempDir()
	s, _ := newTestScaffolder(t, root)

	checks, err := s.Verify()
	require.Error(t, err)
	assert.Len(t, checks, 23+7+2)

	require.NoError(t, s.CreateFileStructure())

	checks, err = s.Verify()
	require.NoError(t, err)
	for _, c := range checks {
		assert.True(t, c.OK, "%s: %s", c.Path, c.Reason)
	}

	require.NoError(t, os.Remove(filepath.Join(root, "routes", "api.js")))
	require.NoError(t, os.Remove(filepath.Join(root, "tests", "integration")))

	checks, err = s.Verify()
	require.Error(t, err)

	var failed []string
	for _, c := range checks {
		if !c.OK {
			failed = append(failed, c.Path)
			assert.Equal(t, "missing", c.Reason)
		}
	}
	assert.Equal(t, []string{"routes/api.js", "tests/integration"}, failed)
}

func TestVerifyWrongType(t *testing.T) {
	root := t.TempDir()
	s, _ := newTestScaffolder(t, root)
	require.NoError(t, s.CreateFileStructure())

	require.NoError(t, os.Remove(filepath.Join(root, "app.js")))
	require.NoError(t, os.Mkdir(filepath.Join(root, "app.js"), 0o755))

	checks, err := s.Verify()
	require.Error(t, err)

	for _, c := range checks {
		if c.Path == "app.js" {
			assert.False(t, c.OK)
			assert.Equal(t, "not a regular file", c.Reason)
		}
	}
}

func TestVerifyThroughFileSystemManager(t *testing.T) {
	mock := system.NewMockFileSystem()
	s := NewScaffolder(mock, ui.NewWithWriter(&bytes.Buffer{}), "/project", 0755, 0644)

	checks, err := s.Verify()
	require.Error(t, err)
	for _, c := range checks {
		assert.Equal(t, "missing", c.Reason, c.Path)
	}

	require.NoError(t, s.CreateFileStructure())
	checks, err = s.Verify()
	require.NoError(t, err)
	assert.Len(t, checks, 23+7+2)

	mock.Files[filepath.Join("/project", "README.md")] = 11
	delete(mock.Files, filepath.Join("/project", "app.js"))
	mock.Dirs[filepath.Join("/project", "app.js")] = true
	denied := errors.New("permission denied")
	mock.FailOn[filepath.Join("/project", "models")] = denied

	checks, err = s.Verify()
	require.Error(t, err)

	reasons := map[string]string{}
	for _, c := range checks {
		if c.Path == "README.md" {
			assert.True(t, c.OK)
			assert.Equal(t, int64(11), c.Size)
		}
		if !c.OK {
			reasons[c.Path] = c.Reason
		}
	}
	assert.Equal(t, map[string]string{
		"app.js": "not a regular file",
		"models": "permission denied",
	}, reasons)

	pending, err := s.PendingTruncations()
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, pending)
}
