package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".jejak"
	// DefaultFileName is the settings file inside that folder.
	DefaultFileName = "config.toml"
	// PathEnv overrides where the settings file is looked up.
	PathEnv = "JEJAK_CONFIG"
)

// ResolvePath determines which settings file to load. An explicit flag value
// wins, then the JEJAK_CONFIG environment variable, then ~/.jejak/config.toml.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return expandPath(flagValue)
	}

	if override, ok := os.LookupEnv(PathEnv); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return expandPath(override)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName), nil
}

func expandPath(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return filepath.Abs(input)
}
