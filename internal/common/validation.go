package common

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
)

// ValidateRelPath validates a slash-separated layout path.
// It must be non-empty, relative, already clean and must not climb out of the root.
func ValidateRelPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return fmt.Errorf("path must be relative and slash-separated: %s", p)
	}

	if path.Clean(p) != p {
		return fmt.Errorf("path is not clean: %s (want %s)", p, path.Clean(p))
	}

	for _, segment := range strings.Split(p, "/") {
		if segment == ".." || segment == "." {
			return fmt.Errorf("path cannot contain '.' or '..' segments: %s", p)
		}
	}

	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ParsePerm parses an octal permission string such as "0755", "755" or "0o755"
func ParsePerm(value string) (os.FileMode, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("permission cannot be empty")
	}

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")

	p, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal permission: %s", value)
	}

	if p > 0o777 {
		return 0, fmt.Errorf("permission out of range (max 0777): %s", value)
	}

	return os.FileMode(p), nil
}

// ValidateDirPerm rejects directory modes the owner could not traverse or populate.
// The owner needs read, write and search (0700) on every created directory.
func ValidateDirPerm(perm os.FileMode) error {
	if perm&0o700 != 0o700 {
		return fmt.Errorf("directory permission %04o must grant the owner rwx (0700)", perm)
	}
	return nil
}

// ValidateFilePerm rejects file modes without owner write, since a re-run
// must be able to truncate every created file.
func ValidateFilePerm(perm os.FileMode) error {
	if perm&0o200 == 0 {
		return fmt.Errorf("file permission %04o must grant the owner write (0200)", perm)
	}
	return nil
}

// ValidateConfigKey validates that key is one of the allowed configuration keys
func ValidateConfigKey(key string, allowed []string) error {
	if err := ValidateNotEmpty(key); err != nil {
		return fmt.Errorf("config key: %w", err)
	}

	for _, k := range allowed {
		if k == key {
			return nil
		}
	}

	return fmt.Errorf("unknown config key: %s (allowed: %s)", key, strings.Join(allowed, ", "))
}
