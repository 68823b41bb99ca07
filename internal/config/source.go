package config

import (
	"github.com/spf13/viper"
)

// source contains the configuration for all external tracker sources.
type source struct {
	Type string `yaml:"type" mapstructure:"type"` // which source adapter to use for sync
	Jira jira   `yaml:"jira" mapstructure:"jira"`
}

type jira struct {
	Server   string   `yaml:"server" mapstructure:"server"`       // base URL of the Jira server
	Token    string   `yaml:"token" mapstructure:"token"`         // personal access token (prefer CVELENS_SOURCE_JIRA_TOKEN)
	Labels   []string `yaml:"labels" mapstructure:"labels"`       // labels that identify CVE tracker issues
	PageSize int      `yaml:"page-size" mapstructure:"page-size"` // number of issues fetched per search page
}

func (cfg source) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("source.type", "jira")
	v.SetDefault("source.jira.server", "")
	v.SetDefault("source.jira.token", "")
	v.SetDefault("source.jira.labels", []string{"Security", "SecurityTracking"})
	v.SetDefault("source.jira.page-size", 100)
}
