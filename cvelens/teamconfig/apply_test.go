package teamconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/db/store"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "cvelens.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func sampleParsedConfig() *Config {
	return &Config{
		Teams: []TeamEntry{
			{
				Name:        "Platform",
				Description: "Core platform services",
				Projects:    []string{"ACME", "WIDGET"},
			},
			{
				Name:     "Security",
				Projects: []string{"SECTOOLS"},
			},
		},
		Dependencies: map[string][]string{
			"ACME": {"WIDGET", "SECTOOLS"},
		},
	}
}

func TestApplyCreatesTeamsAndProjects(t *testing.T) {
	s := newTestStore(t)

	stats, err := Apply(s, sampleParsedConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TeamsCreated)
	assert.Equal(t, 0, stats.TeamsUpdated)
	assert.Equal(t, 3, stats.ProjectsCreated)
	assert.Equal(t, 2, stats.DependenciesAdded)

	platform, err := s.GetTeam("Platform")
	require.NoError(t, err)
	require.NotNil(t, platform)
	assert.Equal(t, "Core platform services", platform.Description)

	acme, err := s.GetProject("ACME")
	require.NoError(t, err)
	require.NotNil(t, acme)
	require.NotNil(t, acme.TeamID)
	assert.Equal(t, platform.ID, *acme.TeamID)

	deps, err := s.UpstreamDependencies("ACME")
	require.NoError(t, err)
	keys := make([]string, len(deps))
	for idx, dep := range deps {
		keys[idx] = dep.Key
	}
	assert.ElementsMatch(t, []string{"WIDGET", "SECTOOLS"}, keys)
}

func TestApplyIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	_, err := Apply(s, sampleParsedConfig())
	require.NoError(t, err)

	stats, err := Apply(s, sampleParsedConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TeamsCreated)
	assert.Equal(t, 2, stats.TeamsUpdated)
	assert.Equal(t, 0, stats.ProjectsCreated)
	assert.Equal(t, 0, stats.DependenciesAdded)

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Teams)
	assert.Equal(t, 3, counts.Projects)
}

func TestApplyAdoptsDiscoveredProject(t *testing.T) {
	s := newTestStore(t)

	// simulate a project first seen by the sync path, unowned
	require.NoError(t, s.AddProject(&db.Project{Key: "ACME", Name: "ACME"}))

	_, err := Apply(s, sampleParsedConfig())
	require.NoError(t, err)

	acme, err := s.GetProject("ACME")
	require.NoError(t, err)
	require.NotNil(t, acme)
	require.NotNil(t, acme.TeamID)

	platform, err := s.GetTeam("Platform")
	require.NoError(t, err)
	assert.Equal(t, platform.ID, *acme.TeamID)
}

func TestApplySkipsUnknownDependencyProjects(t *testing.T) {
	s := newTestStore(t)

	cfg := &Config{
		Teams: []TeamEntry{
			{Name: "Platform", Projects: []string{"ACME"}},
		},
		Dependencies: map[string][]string{
			"ACME": {"GHOST"},
		},
	}

	stats, err := Apply(s, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DependenciesAdded)

	deps, err := s.UpstreamDependencies("ACME")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestApplyReassignsOwnership(t *testing.T) {
	s := newTestStore(t)

	first := &Config{
		Teams: []TeamEntry{
			{Name: "Platform", Projects: []string{"ACME"}},
		},
	}
	_, err := Apply(s, first)
	require.NoError(t, err)

	second := &Config{
		Teams: []TeamEntry{
			{Name: "Platform"},
			{Name: "Security", Projects: []string{"ACME"}},
		},
	}
	_, err = Apply(s, second)
	require.NoError(t, err)

	security, err := s.GetTeam("Security")
	require.NoError(t, err)
	require.NotNil(t, security)

	acme, err := s.GetProject("ACME")
	require.NoError(t, err)
	require.NotNil(t, acme)
	require.NotNil(t, acme.TeamID)
	assert.Equal(t, security.ID, *acme.TeamID)
}
