package teamconfig

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Config is the declarative team/project ownership document. Dependencies map
// a downstream project key to the upstream project keys it consumes.
type Config struct {
	Teams        []TeamEntry         `yaml:"teams"`
	Dependencies map[string][]string `yaml:"project-dependencies"`
}

// TeamEntry declares one team and the projects it owns.
type TeamEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Projects    []string `yaml:"projects"`
}

// Load reads and parses the config document at the given path. A missing file
// yields an empty config, not an error, so that apply is a no-op rather than
// a failure on fresh setups.
func Load(fs afero.Fs, path string) (*Config, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to check for config at %q: %w", path, err)
	}
	if !exists {
		return &Config{}, nil
	}

	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config at %q: %w", path, err)
	}

	cfg, err := parse(contents)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config at %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFile is Load against the host filesystem.
func LoadFile(path string) (*Config, error) {
	return Load(afero.NewOsFs(), path)
}

func parse(contents []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(contents, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	seen := make(map[string]struct{})
	for _, team := range c.Teams {
		if team.Name == "" {
			return fmt.Errorf("team with empty name")
		}
		if _, dup := seen[team.Name]; dup {
			return fmt.Errorf("team %q declared more than once", team.Name)
		}
		seen[team.Name] = struct{}{}
	}
	return nil
}
