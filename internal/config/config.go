// Package config provides thread-safe configuration management for
// analyzer-scaffold. Settings are KEY=VALUE pairs in an optional dotenv-style
// file; a missing file means every key takes its default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/common"
)

// DefaultFileName is the config file name used under the user's home directory
const DefaultFileName = ".analyzer-scaffold.conf"

// Config manages analyzer-scaffold configuration with thread-safe operations
type Config struct {
	filePath string
	data     map[string]string
	loaded   bool // Track if configuration has been loaded from disk
	mu       sync.RWMutex
}

// ensureLoaded loads configuration data from disk once before read operations.
// Callers must not hold c.mu; readers take c.mu.RLock afterwards.
func (c *Config) ensureLoaded() error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	return c.load()
}

// New creates a new Config instance. An empty filePath selects ~/.analyzer-scaffold.conf.
func New(filePath string) *Config {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		filePath = filepath.Join(home, DefaultFileName)
	}

	return &Config{
		filePath: filePath,
		data:     make(map[string]string),
	}
}

// Load reads configuration from file
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Config) load() error {
	content, err := godotenv.Read(c.filePath)
	if err != nil {
		// If file doesn't exist, that's okay - we'll create it on Save
		if errors.Is(err, fs.ErrNotExist) {
			c.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", c.filePath, err)
	}

	c.data = content
	c.loaded = true
	return nil
}

// save writes configuration to file using atomic write pattern.
// Callers must hold c.mu.Lock.
func (c *Config) save() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := godotenv.Marshal(c.data)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, DefaultFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	fmt.Fprintln(tmpFile, "# analyzer-scaffold configuration")
	fmt.Fprintf(tmpFile, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if body != "" {
		fmt.Fprintln(tmpFile, body)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}

// Get retrieves a configuration value (thread-safe)
func (c *Config) Get(key string) (string, error) {
	if err := c.ensureLoaded(); err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.data[key]
	if !exists {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return value, nil
}

// GetOrDefault retrieves a value or returns default if not found (thread-safe)
// First checks the config, then the Defaults table, then the provided fallback
func (c *Config) GetOrDefault(key, defaultValue string) string {
	if value, err := c.Get(key); err == nil {
		return value
	}
	if tableDefault, exists := Defaults[key]; exists {
		return tableDefault
	}
	return defaultValue
}

// GetPerm returns a permission key parsed as a file mode
func (c *Config) GetPerm(key string) (os.FileMode, error) {
	perm, err := parsePermFor(key, c.GetOrDefault(key, ""))
	if err != nil {
		return 0, fmt.Errorf("invalid %s in %s: %w", key, c.filePath, err)
	}
	return perm, nil
}

// parsePermFor parses value and applies the owner-access rule for key
func parsePermFor(key, value string) (os.FileMode, error) {
	perm, err := common.ParsePerm(value)
	if err != nil {
		return 0, err
	}
	switch key {
	case KeyDirPerm:
		err = common.ValidateDirPerm(perm)
	case KeyFilePerm:
		err = common.ValidateFilePerm(perm)
	}
	if err != nil {
		return 0, err
	}
	return perm, nil
}

// Set validates and stores a configuration value, then saves the file (thread-safe)
func (c *Config) Set(key, value string) error {
	if err := common.ValidateConfigKey(key, Keys); err != nil {
		return err
	}
	if _, err := parsePermFor(key, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Load existing configuration first to avoid overwriting
	if !c.loaded {
		if err := c.load(); err != nil {
			return fmt.Errorf("failed to load existing config before set: %w", err)
		}
	}

	c.data[key] = value
	return c.save()
}

// Effective returns every known key with its resolved value, sorted by key.
// Permission values are shown as four-digit octal regardless of how the file stores them.
func (c *Config) Effective() [][2]string {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		value := c.GetOrDefault(k, "")
		if perm, err := common.ParsePerm(value); err == nil {
			value = fmt.Sprintf("%04o", perm)
		}
		out = append(out, [2]string{k, value})
	}
	return out
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}
