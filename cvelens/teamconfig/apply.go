package teamconfig

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/wagoodman/go-partybus"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/event"
	"github.com/cvelens/cvelens/internal/bus"
	"github.com/cvelens/cvelens/internal/log"
)

// Stats summarizes a config reconciliation.
type Stats struct {
	TeamsCreated      int
	TeamsUpdated      int
	ProjectsCreated   int
	DependenciesAdded int
}

// Apply reconciles the declared teams, project ownership, and dependency
// edges into the store. The operation is idempotent: applying the same config
// twice makes no further changes. Edges naming unknown projects are skipped
// with a warning. Problems with individual entries are accumulated rather
// than aborting the whole reconciliation.
func Apply(store db.Store, cfg *Config) (*Stats, error) {
	stats := &Stats{}
	var errs error

	for _, entry := range cfg.Teams {
		team, err := ensureTeam(store, entry, stats)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		for _, key := range entry.Projects {
			if err := ensureProjectOwnership(store, key, team, stats); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	for downstream, upstreams := range cfg.Dependencies {
		for _, upstream := range upstreams {
			added, err := store.AddProjectDependency(upstream, downstream)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("dependency %s -> %s: %w", upstream, downstream, err))
				continue
			}
			if added {
				stats.DependenciesAdded++
			}
		}
	}

	bus.Publish(partybus.Event{
		Type:  event.TeamConfigApplied,
		Value: *stats,
	})

	log.Infof("team config applied: %d teams created, %d updated, %d projects created, %d dependencies added",
		stats.TeamsCreated, stats.TeamsUpdated, stats.ProjectsCreated, stats.DependenciesAdded)

	return stats, errs
}

func ensureTeam(store db.Store, entry TeamEntry, stats *Stats) (*db.Team, error) {
	team, err := store.GetTeam(entry.Name)
	if err != nil {
		return nil, fmt.Errorf("team %q: %w", entry.Name, err)
	}

	if team == nil {
		team = &db.Team{
			Name:        entry.Name,
			Description: entry.Description,
		}
		if err := store.AddTeam(team); err != nil {
			return nil, fmt.Errorf("team %q: %w", entry.Name, err)
		}
		stats.TeamsCreated++
		return team, nil
	}

	if team.Description != entry.Description {
		team.Description = entry.Description
		if err := store.UpdateTeam(team); err != nil {
			return nil, fmt.Errorf("team %q: %w", entry.Name, err)
		}
	}
	stats.TeamsUpdated++
	return team, nil
}

// ensureProjectOwnership creates the project under the team, or reassigns an
// existing project to it. The config is authoritative for ownership, so a
// project claimed by two teams ends up with the later one.
func ensureProjectOwnership(store db.Store, key string, team *db.Team, stats *Stats) error {
	project, err := store.GetProject(key)
	if err != nil {
		return fmt.Errorf("project %q: %w", key, err)
	}

	if project == nil {
		project = &db.Project{
			Key:    key,
			Name:   key,
			TeamID: &team.ID,
		}
		if err := store.AddProject(project); err != nil {
			return fmt.Errorf("project %q: %w", key, err)
		}
		stats.ProjectsCreated++
		return nil
	}

	if project.TeamID == nil || *project.TeamID != team.ID {
		if project.TeamID != nil {
			log.Warnf("project %q reassigned to team %q", key, team.Name)
		}
		project.TeamID = &team.ID
		if err := store.UpdateProject(project); err != nil {
			return fmt.Errorf("project %q: %w", key, err)
		}
	}
	return nil
}
