package config

// Configuration key constants to prevent typos and enable autocomplete
const (
	KeyDirPerm  = "SCAFFOLD_DIR_PERM"  // Mode for created directories
	KeyFilePerm = "SCAFFOLD_FILE_PERM" // Mode for newly created files
)

// Keys lists every key accepted in the configuration file
var Keys = []string{KeyDirPerm, KeyFilePerm}

// Default values for configuration keys
var Defaults = map[string]string{
	KeyDirPerm:  "0755",
	KeyFilePerm: "0644",
}
