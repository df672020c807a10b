// Package config loads the TOML settings file and turns it into the immutable
// Settings value the rest of the program is constructed from.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// TokenEnv names the environment variable holding the tracker API token. The
// token is never read from the settings file.
const TokenEnv = "JIRA_TOKEN"

type fileConfig struct {
	ProjectKeys []string          `toml:"project_keys"`
	OrgFiles    []string          `toml:"org_files"`
	Global      globalConfig      `toml:"global"`
	Tags        map[string]string `toml:"tags"`
}

type globalConfig struct {
	Server string `toml:"server"`
	Email  string `toml:"email"`
}

// Settings is the fully resolved configuration for one run. Read-only after
// Load; passed into component constructors rather than looked up ambiently.
type Settings struct {
	Server string
	Email  string
	Token  string

	ProjectKeys     []string
	ProjectPatterns []*regexp.Regexp
	Tags            map[string]string
	OrgFiles        []string
}

// Load reads the TOML file at path and resolves it into Settings. Org file
// paths are tilde-expanded; project-key patterns are compiled in key order.
func Load(path string) (*Settings, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	settings := &Settings{
		Server: fc.Global.Server,
		Email:  fc.Global.Email,
		Token:  os.Getenv(TokenEnv),
		Tags:   fc.Tags,
	}

	for _, file := range fc.OrgFiles {
		expanded, err := expandPath(file)
		if err != nil {
			return nil, fmt.Errorf("resolve org file %q: %w", file, err)
		}
		settings.OrgFiles = append(settings.OrgFiles, expanded)
	}

	if err := settings.SetProjectKeys(fc.ProjectKeys); err != nil {
		return nil, err
	}

	return settings, nil
}

// SetProjectKeys replaces the project keys and recompiles one issue pattern
// per key, preserving key order. Each pattern captures KEY-<digits>.
func (s *Settings) SetProjectKeys(keys []string) error {
	patterns := make([]*regexp.Regexp, 0, len(keys))
	for _, key := range keys {
		pattern, err := regexp.Compile(fmt.Sprintf(`\s*(%s-\d+)\s*`, regexp.QuoteMeta(key)))
		if err != nil {
			return fmt.Errorf("compile project pattern for %q: %w", key, err)
		}
		patterns = append(patterns, pattern)
	}
	s.ProjectKeys = keys
	s.ProjectPatterns = patterns
	return nil
}

// ValidateFiles checks that at least one org file is configured.
func (s *Settings) ValidateFiles() error {
	if len(s.OrgFiles) == 0 {
		return errors.New("no org_files configured")
	}
	return nil
}

// ValidateRemote checks that everything needed to talk to the tracker is set.
func (s *Settings) ValidateRemote() error {
	if s.Server == "" {
		return errors.New("global.server is not configured")
	}
	if s.Email == "" {
		return errors.New("global.email is not configured")
	}
	if s.Token == "" {
		return fmt.Errorf("%s is not set", TokenEnv)
	}
	return nil
}
