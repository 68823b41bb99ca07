package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/severity"
)

func newTestStore(t *testing.T) db.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cvelens.db"), true)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestTeamRoundTrip(t *testing.T) {
	s := newTestStore(t)

	missing, err := s.GetTeam("Platform")
	require.NoError(t, err)
	assert.Nil(t, missing)

	team := &db.Team{Name: "Platform", Description: "Core platform services"}
	require.NoError(t, s.AddTeam(team))
	assert.NotZero(t, team.ID)

	fetched, err := s.GetTeam("Platform")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	if diff := deep.Equal(team, fetched); diff != nil {
		t.Errorf("team mismatch: %+v", diff)
	}

	team.Description = "Platform engineering"
	require.NoError(t, s.UpdateTeam(team))

	fetched, err = s.GetTeam("Platform")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Platform engineering", fetched.Description)
}

func TestProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)

	team := &db.Team{Name: "Platform"}
	require.NoError(t, s.AddTeam(team))

	project := &db.Project{Key: "ACME", Name: "Acme Platform", ExternalID: "10001"}
	require.NoError(t, s.AddProject(project))

	fetched, err := s.GetProject("ACME")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Nil(t, fetched.TeamID)
	assert.Equal(t, "10001", fetched.ExternalID)

	project.TeamID = &team.ID
	project.Name = "Acme"
	require.NoError(t, s.UpdateProject(project))

	fetched, err = s.GetProject("ACME")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.NotNil(t, fetched.TeamID)
	assert.Equal(t, team.ID, *fetched.TeamID)
	assert.Equal(t, "Acme", fetched.Name)
}

func TestProjectDependencies(t *testing.T) {
	s := newTestStore(t)

	for _, key := range []string{"ACME", "WIDGET", "SECTOOLS"} {
		require.NoError(t, s.AddProject(&db.Project{Key: key, Name: key}))
	}

	added, err := s.AddProjectDependency("WIDGET", "ACME")
	require.NoError(t, err)
	assert.True(t, added)

	// same edge again is a no-op
	added, err = s.AddProjectDependency("WIDGET", "ACME")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = s.AddProjectDependency("SECTOOLS", "ACME")
	require.NoError(t, err)
	assert.True(t, added)

	// unknown endpoints are skipped, not errors
	added, err = s.AddProjectDependency("GHOST", "ACME")
	require.NoError(t, err)
	assert.False(t, added)

	deps, err := s.UpstreamDependencies("ACME")
	require.NoError(t, err)
	keys := make([]string, len(deps))
	for idx, dep := range deps {
		keys[idx] = dep.Key
	}
	assert.ElementsMatch(t, []string{"WIDGET", "SECTOOLS"}, keys)

	deps, err = s.UpstreamDependencies("WIDGET")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestTrackerRoundTrip(t *testing.T) {
	s := newTestStore(t)

	project := &db.Project{Key: "ACME", Name: "ACME"}
	require.NoError(t, s.AddProject(project))

	cve := &db.CVE{CVEID: "CVE-2024-0001"}
	require.NoError(t, s.AddCVE(cve))

	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	tracker := &db.Tracker{
		ExternalKey: "ACME-101",
		SourceType:  "jira",
		ProjectID:   project.ID,
		CVEID:       &cve.ID,
		Summary:     "CVE-2024-0001 libfoo: heap overflow",
		Status:      "In Progress",
		Severity:    "Important",
		CreatedDate: &created,
	}
	require.NoError(t, s.AddTracker(tracker))

	fetched, err := s.GetTracker("ACME-101")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "In Progress", fetched.Status)
	require.NotNil(t, fetched.CVEID)
	assert.Equal(t, cve.ID, *fetched.CVEID)
	require.NotNil(t, fetched.CreatedDate)
	assert.True(t, created.Equal(*fetched.CreatedDate))

	tracker.Status = "Closed"
	tracker.Resolution = "Done"
	require.NoError(t, s.UpdateTracker(tracker))

	fetched, err = s.GetTracker("ACME-101")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Closed", fetched.Status)
	assert.False(t, fetched.IsOpen())
}

func TestAffectedProjectsAndTeams(t *testing.T) {
	s := newTestStore(t)

	platform := &db.Team{Name: "Platform"}
	security := &db.Team{Name: "Security"}
	require.NoError(t, s.AddTeam(platform))
	require.NoError(t, s.AddTeam(security))

	acme := &db.Project{Key: "ACME", Name: "ACME", TeamID: &platform.ID}
	widget := &db.Project{Key: "WIDGET", Name: "WIDGET", TeamID: &platform.ID}
	sectools := &db.Project{Key: "SECTOOLS", Name: "SECTOOLS", TeamID: &security.ID}
	orphan := &db.Project{Key: "ORPHAN", Name: "ORPHAN"}
	for _, p := range []*db.Project{acme, widget, sectools, orphan} {
		require.NoError(t, s.AddProject(p))
	}

	cve := &db.CVE{CVEID: "CVE-2024-0001"}
	require.NoError(t, s.AddCVE(cve))

	for idx, p := range []*db.Project{acme, acme, sectools, orphan} {
		require.NoError(t, s.AddTracker(&db.Tracker{
			ExternalKey: []string{"ACME-1", "ACME-2", "SEC-1", "ORPH-1"}[idx],
			ProjectID:   p.ID,
			CVEID:       &cve.ID,
			Severity:    []string{"Low", "Important", "Moderate", ""}[idx],
		}))
	}

	projects, err := s.AffectedProjects("CVE-2024-0001")
	require.NoError(t, err)
	keys := make([]string, len(projects))
	for idx, p := range projects {
		keys[idx] = p.Key
	}
	assert.ElementsMatch(t, []string{"ACME", "SECTOOLS", "ORPHAN"}, keys)

	teams, err := s.AffectedTeams("CVE-2024-0001")
	require.NoError(t, err)
	names := make([]string, len(teams))
	for idx, team := range teams {
		names[idx] = team.Name
	}
	assert.ElementsMatch(t, []string{"Platform", "Security"}, names)

	effective, err := s.EffectiveSeverity("CVE-2024-0001")
	require.NoError(t, err)
	assert.Equal(t, severity.Important, effective)

	trackers, err := s.TrackersForCVE("CVE-2024-0001")
	require.NoError(t, err)
	assert.Len(t, trackers, 4)
}

func TestAffectedProjectsUnknownCVE(t *testing.T) {
	s := newTestStore(t)

	projects, err := s.AffectedProjects("CVE-1999-0001")
	require.NoError(t, err)
	assert.Empty(t, projects)

	effective, err := s.EffectiveSeverity("CVE-1999-0001")
	require.NoError(t, err)
	assert.Equal(t, severity.Unknown, effective)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, db.Counts{}, counts)

	require.NoError(t, s.AddTeam(&db.Team{Name: "Platform"}))
	require.NoError(t, s.AddProject(&db.Project{Key: "ACME", Name: "ACME"}))
	require.NoError(t, s.AddCVE(&db.CVE{CVEID: "CVE-2024-0001"}))
	require.NoError(t, s.AddCVE(&db.CVE{CVEID: "CVE-2024-0002"}))

	counts, err = s.Counts()
	require.NoError(t, err)
	assert.Equal(t, db.Counts{Teams: 1, Projects: 1, CVEs: 2}, counts)
}

func TestLastSyncWatermark(t *testing.T) {
	s := newTestStore(t)

	last, err := s.GetLastSync()
	require.NoError(t, err)
	assert.Nil(t, last)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SetLastSync(first))

	last, err = s.GetLastSync()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, first.Equal(*last))

	second := first.Add(24 * time.Hour)
	require.NoError(t, s.SetLastSync(second))

	last, err = s.GetLastSync()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, second.Equal(*last))
}

func TestTransactionCommit(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)

	require.NoError(t, tx.AddProject(&db.Project{Key: "ACME", Name: "ACME"}))
	require.NoError(t, tx.Commit())

	project, err := s.GetProject("ACME")
	require.NoError(t, err)
	assert.NotNil(t, project)
}

func TestTransactionRollback(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Begin()
	require.NoError(t, err)

	require.NoError(t, tx.AddProject(&db.Project{Key: "ACME", Name: "ACME"}))

	// visible inside the transaction
	inside, err := tx.GetProject("ACME")
	require.NoError(t, err)
	assert.NotNil(t, inside)

	require.NoError(t, tx.Rollback())

	project, err := s.GetProject("ACME")
	require.NoError(t, err)
	assert.Nil(t, project)
}
