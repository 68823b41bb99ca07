package teamconfig

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
teams:
  - name: Platform
    description: Core platform services
    projects:
      - ACME
      - WIDGET
  - name: Security
    projects:
      - SECTOOLS
project-dependencies:
  ACME:
    - WIDGET
    - SECTOOLS
`

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "teams.yaml", []byte(sampleConfig), 0644))

	cfg, err := Load(fs, "teams.yaml")
	require.NoError(t, err)

	require.Len(t, cfg.Teams, 2)
	assert.Equal(t, "Platform", cfg.Teams[0].Name)
	assert.Equal(t, "Core platform services", cfg.Teams[0].Description)
	assert.Equal(t, []string{"ACME", "WIDGET"}, cfg.Teams[0].Projects)
	assert.Equal(t, "Security", cfg.Teams[1].Name)
	assert.Empty(t, cfg.Teams[1].Description)

	assert.Equal(t, map[string][]string{
		"ACME": {"WIDGET", "SECTOOLS"},
	}, cfg.Dependencies)
}

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "does-not-exist.yaml")
	require.NoError(t, err)
	assert.Empty(t, cfg.Teams)
	assert.Empty(t, cfg.Dependencies)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "unknown keys",
			contents: "teams: []\nsquads: []\n",
		},
		{
			name:     "empty team name",
			contents: "teams:\n  - description: no name\n",
		},
		{
			name:     "duplicate team",
			contents: "teams:\n  - name: Platform\n  - name: Platform\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "teams.yaml", []byte(test.contents), 0644))
			_, err := Load(fs, "teams.yaml")
			assert.Error(t, err)
		})
	}
}
