// Package layout holds the fixed project skeleton created by analyzer-scaffold:
// the ordered list of placeholder files and the extra empty test directories.
// Entries are slash-separated paths relative to the project root.
package layout

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/common"
)

// files is the placeholder file table, in creation order.
var files = [...]string{
	".env",
	".gitignore",
	"package.json",
	"README.md",
	"app.js",
	"config/config.js",
	"controllers/analysisController.js",
	"middleware/errorMiddleware.js",
	"middleware/authMiddleware.js",
	"middleware/validationMiddleware.js",
	"models/Report.js",
	"routes/api.js",
	"services/githubService.js",
	"services/openaiService.js",
	"services/deepSeekService.js",
	"services/analyzerService.js",
	"services/securityAnalyzer.js",
	"services/performanceAnalyzer.js",
	"services/memoryAnalyzer.js",
	"services/batteryAnalyzer.js",
	"utils/logger.js",
	"utils/helpers.js",
	"utils/constants.js",
}

// testDirs are created empty after all files.
var testDirs = [...]string{
	"tests/unit",
	"tests/integration",
}

// Files returns the placeholder files in creation order
func Files() []string {
	out := make([]string, len(files))
	copy(out, files[:])
	return out
}

// TestDirs returns the empty test directories in creation order
func TestDirs() []string {
	out := make([]string, len(testDirs))
	copy(out, testDirs[:])
	return out
}

// ImpliedDirs returns the parent directories of Files, first-seen order, without duplicates.
func ImpliedDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		dir := path.Dir(f)
		if dir == "." || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// Validate checks every entry is a clean relative path and that no entry is listed twice
func Validate() error {
	if err := validateList("file", files[:]); err != nil {
		return err
	}
	return validateList("directory", testDirs[:])
}

func validateList(kind string, entries []string) error {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if err := common.ValidateRelPath(entry); err != nil {
			return fmt.Errorf("invalid %s entry: %w", kind, err)
		}
		if seen[entry] {
			return fmt.Errorf("duplicate %s entry: %s", kind, entry)
		}
		seen[entry] = true
	}
	return nil
}

// Manifest is the machine-readable form of the layout
type Manifest struct {
	Files       []string `yaml:"files"`
	Directories []string `yaml:"directories"`
}

// NewManifest returns the manifest for the built-in layout
func NewManifest() Manifest {
	return Manifest{
		Files:       Files(),
		Directories: TestDirs(),
	}
}

// YAML renders the manifest as a YAML document
func (m Manifest) YAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout: %w", err)
	}
	return data, nil
}

type node struct {
	name     string
	dir      bool
	children []*node
}

func (n *node) child(name string, dir bool) *node {
	for _, c := range n.children {
		if c.name == name {
			c.dir = c.dir || dir
			return c
		}
	}
	c := &node{name: name, dir: dir}
	n.children = append(n.children, c)
	return c
}

// Tree renders the layout in the style of the tree(1) command.
// Directories carry a trailing slash; children keep declaration order.
func Tree() string {
	root := &node{name: ".", dir: true}

	insert := func(entry string, leafDir bool) {
		parts := strings.Split(entry, "/")
		cur := root
		for i, part := range parts {
			last := i == len(parts)-1
			cur = cur.child(part, !last || leafDir)
		}
	}

	for _, f := range files {
		insert(f, false)
	}
	for _, d := range testDirs {
		insert(d, true)
	}

	var b strings.Builder
	b.WriteString("./\n")
	writeChildren(&b, root, "")
	return b.String()
}

func writeChildren(b *strings.Builder, n *node, prefix string) {
	for i, c := range n.children {
		branch, indent := "├── ", "│   "
		if i == len(n.children)-1 {
			branch, indent = "└── ", "    "
		}

		name := c.name
		if c.dir {
			name += "/"
		}
		b.WriteString(prefix + branch + name + "\n")

		if len(c.children) > 0 {
			writeChildren(b, c, prefix+indent)
		}
	}
}
