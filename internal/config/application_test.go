package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApplicationConfigFromFile(t *testing.T) {
	contents := `
quiet: false
log:
  level: debug
db:
  dir: /tmp/cvelens-test/db
source:
  type: jira
  jira:
    server: https://issues.example.com
    labels:
      - Security
    page-size: 50
teams:
  file: ownership.yaml
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0644))

	cfg, err := LoadApplicationConfig(viper.New(), CliOnlyOptions{ConfigPath: configPath})
	require.NoError(t, err)

	expectedSource := source{
		Type: "jira",
		Jira: jira{
			Server:   "https://issues.example.com",
			Labels:   []string{"Security"},
			PageSize: 50,
		},
	}
	if diff := cmp.Diff(expectedSource, cfg.Source); diff != "" {
		t.Errorf("unexpected source config (-want +got):\n%s", diff)
	}

	assert.Equal(t, "/tmp/cvelens-test/db", cfg.DB.Dir)
	assert.Equal(t, "ownership.yaml", cfg.Teams.File)
	assert.Equal(t, logrus.DebugLevel, cfg.Log.LevelOpt)
}

func TestDefaultSourceConfig(t *testing.T) {
	v := viper.New()
	cfg := newApplicationConfig(v, CliOnlyOptions{})
	require.NoError(t, v.Unmarshal(cfg))

	assert.Equal(t, "jira", cfg.Source.Type)
	assert.Equal(t, []string{"Security", "SecurityTracking"}, cfg.Source.Jira.Labels)
	assert.Equal(t, 100, cfg.Source.Jira.PageSize)
	assert.Equal(t, "teams.yaml", cfg.Teams.File)
	assert.NotEmpty(t, cfg.DB.Path())
}

func TestParseLogLevelOption(t *testing.T) {
	tests := []struct {
		name     string
		config   Application
		expected logrus.Level
	}{
		{
			name:     "default is warn",
			config:   Application{},
			expected: logrus.WarnLevel,
		},
		{
			name:     "quiet wins",
			config:   Application{Quiet: true, CliOptions: CliOnlyOptions{Verbosity: 2}},
			expected: logrus.PanicLevel,
		},
		{
			name:     "single verbose flag",
			config:   Application{CliOptions: CliOnlyOptions{Verbosity: 1}},
			expected: logrus.InfoLevel,
		},
		{
			name:     "double verbose flag",
			config:   Application{CliOptions: CliOnlyOptions{Verbosity: 2}},
			expected: logrus.DebugLevel,
		},
		{
			name:     "explicit level",
			config:   Application{Log: logging{Level: "error"}},
			expected: logrus.ErrorLevel,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.config
			require.NoError(t, cfg.parseLogLevelOption())
			assert.Equal(t, test.expected, cfg.Log.LevelOpt)
		})
	}
}

func TestParseLogLevelOptionBadLevel(t *testing.T) {
	cfg := Application{Log: logging{Level: "chatty"}}
	assert.Error(t, cfg.parseLogLevelOption())
}
