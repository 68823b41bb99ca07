package config

import (
	"github.com/spf13/viper"
)

// teams contains the configuration for the declarative team/project topology.
type teams struct {
	File string `yaml:"file" mapstructure:"file"` // path to the teams config file
}

func (cfg teams) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("teams.file", "teams.yaml")
}
