package store

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/scylladb/go-set/u64set"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/db/store/model"
	"github.com/cvelens/cvelens/cvelens/severity"
)

// store holds an instance of the database connection
type store struct {
	db *gorm.DB
}

// New creates a new instance of the store at the given path, creating the
// schema if needed. When overwrite is set any existing database file is
// removed first.
func New(dbFilePath string, overwrite bool) (db.Store, error) {
	d, err := open(config{
		dbPath:    dbFilePath,
		overwrite: overwrite,
	})
	if err != nil {
		return nil, err
	}

	for _, m := range []interface{}{
		&model.TeamModel{},
		&model.ProjectModel{},
		&model.CVEModel{},
		&model.TrackerModel{},
		&model.StateModel{},
	} {
		if err := d.AutoMigrate(m).Error; err != nil {
			return nil, fmt.Errorf("unable to migrate %T: %w", m, err)
		}
	}

	return &store{
		db: d,
	}, nil
}

// Begin opens a transaction-scoped view of the store. All writes made through
// the returned view are invisible to other readers until Commit.
func (s *store) Begin() (db.Transaction, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("unable to begin transaction: %w", tx.Error)
	}
	return &transaction{store{db: tx}}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

type transaction struct {
	store
}

func (t *transaction) Commit() error {
	return t.db.Commit().Error
}

func (t *transaction) Rollback() error {
	return t.db.Rollback().Error
}

// GetTeam fetches a team by name. Returns (nil, nil) when no team matches.
func (s *store) GetTeam(name string) (*db.Team, error) {
	var m model.TeamModel
	err := s.db.Where("name = ?", name).First(&m).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query team %q: %w", name, err)
	}
	team := m.Inflate()
	return &team, nil
}

func (s *store) AddTeam(team *db.Team) error {
	m := model.NewTeamModel(*team)
	result := s.db.Create(&m)
	if result.Error != nil {
		return fmt.Errorf("unable to add team %q: %w", team.Name, result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add team %q (%d rows affected)", team.Name, result.RowsAffected)
	}
	team.ID = m.ID
	return nil
}

func (s *store) UpdateTeam(team *db.Team) error {
	result := s.db.Model(&model.TeamModel{}).Where("id = ?", team.ID).Updates(map[string]interface{}{
		"name":        team.Name,
		"description": team.Description,
	})
	if result.Error != nil {
		return fmt.Errorf("unable to update team %q: %w", team.Name, result.Error)
	}
	return nil
}

// GetProject fetches a project by its external key. Returns (nil, nil) when
// no project matches.
func (s *store) GetProject(key string) (*db.Project, error) {
	m, err := s.projectModel(key)
	if err != nil || m == nil {
		return nil, err
	}
	project := m.Inflate()
	return &project, nil
}

func (s *store) projectModel(key string) (*model.ProjectModel, error) {
	var m model.ProjectModel
	err := s.db.Where("key = ?", key).First(&m).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query project %q: %w", key, err)
	}
	return &m, nil
}

func (s *store) AddProject(project *db.Project) error {
	m := model.NewProjectModel(*project)
	result := s.db.Create(&m)
	if result.Error != nil {
		return fmt.Errorf("unable to add project %q: %w", project.Key, result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add project %q (%d rows affected)", project.Key, result.RowsAffected)
	}
	project.ID = m.ID
	return nil
}

func (s *store) UpdateProject(project *db.Project) error {
	result := s.db.Model(&model.ProjectModel{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"key":         project.Key,
		"name":        project.Name,
		"team_id":     project.TeamID,
		"external_id": project.ExternalID,
	})
	if result.Error != nil {
		return fmt.Errorf("unable to update project %q: %w", project.Key, result.Error)
	}
	return nil
}

// AddProjectDependency links upstream -> downstream. Edges where either
// project is missing are skipped (not an error), as are edges that already
// exist; the return value reports whether a new edge was written.
func (s *store) AddProjectDependency(upstreamKey, downstreamKey string) (bool, error) {
	upstream, err := s.projectModel(upstreamKey)
	if err != nil {
		return false, err
	}
	downstream, err := s.projectModel(downstreamKey)
	if err != nil {
		return false, err
	}
	if upstream == nil || downstream == nil {
		return false, nil
	}

	var count int
	err = s.db.Table(model.ProjectDependencyJoinTable).
		Where("upstream_id = ? AND downstream_id = ?", upstream.ID, downstream.ID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("unable to query dependency %s -> %s: %w", upstreamKey, downstreamKey, err)
	}
	if count > 0 {
		return false, nil
	}

	assoc := s.db.Model(downstream).Association("UpstreamDependencies").Append(upstream)
	if assoc.Error != nil {
		return false, fmt.Errorf("unable to add dependency %s -> %s: %w", upstreamKey, downstreamKey, assoc.Error)
	}
	return true, nil
}

// UpstreamDependencies lists the projects that must deliver before the given one.
func (s *store) UpstreamDependencies(projectKey string) ([]db.Project, error) {
	m, err := s.projectModel(projectKey)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	var deps []model.ProjectModel
	assoc := s.db.Model(m).Association("UpstreamDependencies")
	if assoc.Error != nil {
		return nil, fmt.Errorf("unable to query dependencies for %q: %w", projectKey, assoc.Error)
	}
	assoc.Find(&deps)

	projects := make([]db.Project, len(deps))
	for idx, dep := range deps {
		projects[idx] = dep.Inflate()
	}
	return projects, nil
}

// GetCVE fetches a CVE by its public id (e.g. "CVE-2024-12345"). Returns
// (nil, nil) when no CVE matches.
func (s *store) GetCVE(cveID string) (*db.CVE, error) {
	m, err := s.cveModel(cveID)
	if err != nil || m == nil {
		return nil, err
	}
	cve := m.Inflate()
	return &cve, nil
}

func (s *store) cveModel(cveID string) (*model.CVEModel, error) {
	var m model.CVEModel
	err := s.db.Where("cve_id = ?", cveID).First(&m).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query CVE %q: %w", cveID, err)
	}
	return &m, nil
}

func (s *store) AddCVE(cve *db.CVE) error {
	m := model.NewCVEModel(*cve)
	result := s.db.Create(&m)
	if result.Error != nil {
		return fmt.Errorf("unable to add CVE %q: %w", cve.CVEID, result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add CVE %q (%d rows affected)", cve.CVEID, result.RowsAffected)
	}
	cve.ID = m.ID
	return nil
}

// GetTracker fetches a tracker by its source-assigned key. Returns (nil, nil)
// when no tracker matches.
func (s *store) GetTracker(externalKey string) (*db.Tracker, error) {
	var m model.TrackerModel
	err := s.db.Where("external_key = ?", externalKey).First(&m).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query tracker %q: %w", externalKey, err)
	}
	tracker := m.Inflate()
	return &tracker, nil
}

func (s *store) AddTracker(tracker *db.Tracker) error {
	m := model.NewTrackerModel(*tracker)
	result := s.db.Create(&m)
	if result.Error != nil {
		return fmt.Errorf("unable to add tracker %q: %w", tracker.ExternalKey, result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unable to add tracker %q (%d rows affected)", tracker.ExternalKey, result.RowsAffected)
	}
	tracker.ID = m.ID
	return nil
}

func (s *store) UpdateTracker(tracker *db.Tracker) error {
	result := s.db.Model(&model.TrackerModel{}).Where("id = ?", tracker.ID).Updates(map[string]interface{}{
		"source_type":    tracker.SourceType,
		"project_id":     tracker.ProjectID,
		"cve_id":         tracker.CVEID,
		"summary":        tracker.Summary,
		"status":         tracker.Status,
		"resolution":     tracker.Resolution,
		"priority":       tracker.Priority,
		"severity":       tracker.Severity,
		"assignee":       tracker.Assignee,
		"reporter":       tracker.Reporter,
		"created_date":   tracker.CreatedDate,
		"updated_date":   tracker.UpdatedDate,
		"resolved_date":  tracker.ResolvedDate,
		"due_date":       tracker.DueDate,
		"sla_date":       tracker.SLADate,
		"sla_breach":     tracker.SLABreach,
		"closure_reason": tracker.ClosureReason,
		"last_synced_at": tracker.LastSyncedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("unable to update tracker %q: %w", tracker.ExternalKey, result.Error)
	}
	return nil
}

// TrackersForCVE lists all trackers linked to the given CVE id.
func (s *store) TrackersForCVE(cveID string) ([]db.Tracker, error) {
	cve, err := s.cveModel(cveID)
	if err != nil {
		return nil, err
	}
	if cve == nil {
		return nil, nil
	}

	var models []model.TrackerModel
	if err := s.db.Where("cve_id = ?", cve.ID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("unable to query trackers for %q: %w", cveID, err)
	}

	trackers := make([]db.Tracker, len(models))
	for idx, m := range models {
		trackers[idx] = m.Inflate()
	}
	return trackers, nil
}

// AffectedProjects derives the set of projects with at least one tracker for
// the given CVE. The result is computed on demand, never persisted.
func (s *store) AffectedProjects(cveID string) ([]db.Project, error) {
	trackers, err := s.TrackersForCVE(cveID)
	if err != nil {
		return nil, err
	}

	projectIDs := u64set.New()
	for _, tracker := range trackers {
		projectIDs.Add(uint64(tracker.ProjectID))
	}

	var projects []db.Project
	for _, id := range projectIDs.List() {
		var m model.ProjectModel
		err := s.db.Where("id = ?", uint(id)).First(&m).Error
		if gorm.IsRecordNotFoundError(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to query project id=%d: %w", id, err)
		}
		projects = append(projects, m.Inflate())
	}
	return projects, nil
}

// AffectedTeams derives the set of teams owning at least one affected project
// for the given CVE (trackers -> projects -> teams, deduplicated).
func (s *store) AffectedTeams(cveID string) ([]db.Team, error) {
	projects, err := s.AffectedProjects(cveID)
	if err != nil {
		return nil, err
	}

	teamIDs := u64set.New()
	for _, project := range projects {
		if project.TeamID != nil {
			teamIDs.Add(uint64(*project.TeamID))
		}
	}

	var teams []db.Team
	for _, id := range teamIDs.List() {
		var m model.TeamModel
		err := s.db.Where("id = ?", uint(id)).First(&m).Error
		if gorm.IsRecordNotFoundError(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to query team id=%d: %w", id, err)
		}
		teams = append(teams, m.Inflate())
	}
	return teams, nil
}

// EffectiveSeverity computes the authoritative severity of a CVE from its
// trackers (highest rank wins, unknown values ignored).
func (s *store) EffectiveSeverity(cveID string) (severity.Severity, error) {
	trackers, err := s.TrackersForCVE(cveID)
	if err != nil {
		return severity.Unknown, err
	}

	severities := make([]severity.Severity, len(trackers))
	for idx, tracker := range trackers {
		severities[idx] = severity.Parse(tracker.Severity)
	}
	return severity.Highest(severities...), nil
}

func (s *store) Counts() (db.Counts, error) {
	counts := db.Counts{}
	for _, c := range []struct {
		m     interface{}
		value *int
	}{
		{&model.TeamModel{}, &counts.Teams},
		{&model.ProjectModel{}, &counts.Projects},
		{&model.CVEModel{}, &counts.CVEs},
		{&model.TrackerModel{}, &counts.Trackers},
	} {
		if err := s.db.Model(c.m).Count(c.value).Error; err != nil {
			return counts, fmt.Errorf("unable to count %T: %w", c.m, err)
		}
	}
	return counts, nil
}
