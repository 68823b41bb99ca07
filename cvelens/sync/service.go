package sync

import (
	"fmt"
	"time"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/event"
	"github.com/cvelens/cvelens/cvelens/event/monitor"
	"github.com/cvelens/cvelens/cvelens/source"
	"github.com/cvelens/cvelens/internal/bus"
	"github.com/cvelens/cvelens/internal/log"
)

// Stats summarizes a completed sync run. Errors holds per-record failures
// that were skipped without aborting the run.
type Stats struct {
	RecordsProcessed int
	TrackersCreated  int
	TrackersUpdated  int
	CVEsCreated      int
	ProjectsCreated  int
	Errors           []string
}

// Service reconciles external issue records into the entity store.
type Service struct {
	store db.Store
}

func NewService(store db.Store) *Service {
	return &Service{
		store: store,
	}
}

// Sync pulls all records matching the filters from the source and upserts
// them into the store within a single transaction. Per-record failures are
// collected in Stats.Errors and do not abort the run; a failure of the record
// stream itself or of the store rolls everything back.
//
// Sync never touches the incremental watermark. The caller decides whether
// (and with what timestamp) to advance it after a successful run.
func (s *Service) Sync(src source.Source, filters source.FetchFilters) (*Stats, error) {
	if len(filters.ProjectKeys) == 0 {
		return nil, source.ErrNoProjectKeys
	}

	iterator, err := src.FetchTrackers(filters)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("unable to begin sync transaction: %w", err)
	}

	recordsProcessed := &progress.Manual{}
	trackersWritten := &progress.Manual{}
	recordErrors := &progress.Manual{}

	bus.Publish(partybus.Event{
		Type:   event.SourceSyncStarted,
		Source: src.Type(),
		Value: monitor.Sync{
			RecordsProcessed: recordsProcessed,
			TrackersWritten:  trackersWritten,
			RecordErrors:     recordErrors,
		},
	})

	stats := &Stats{}
	now := time.Now().UTC()

	for iterator.Next() {
		record := iterator.Record()
		recordsProcessed.Increment()
		stats.RecordsProcessed++

		if err := s.processRecord(tx, record, now, stats); err != nil {
			recordErrors.Increment()
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", record.SourceKey, err))
			log.Warnf("skipping record %s: %v", record.SourceKey, err)
			continue
		}
		trackersWritten.Increment()

		if stats.RecordsProcessed%50 == 0 {
			log.Debugf("processed %d records so far", stats.RecordsProcessed)
		}
	}

	if err := iterator.Err(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Errorf("unable to roll back sync transaction: %v", rbErr)
		}
		return nil, fmt.Errorf("record stream failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("unable to commit sync transaction: %w", err)
	}

	recordsProcessed.SetCompleted()
	trackersWritten.SetCompleted()
	recordErrors.SetCompleted()

	bus.Publish(partybus.Event{
		Type:   event.SourceSyncFinished,
		Source: src.Type(),
	})

	log.Infof("sync complete: %d records, %d trackers created, %d updated, %d record errors",
		stats.RecordsProcessed, stats.TrackersCreated, stats.TrackersUpdated, len(stats.Errors))

	return stats, nil
}

// processRecord upserts the project, CVEs, and tracker for one record. When a
// record names multiple CVEs all of them get rows, and the tracker links to
// the last one mentioned.
func (s *Service) processRecord(tx db.Transaction, record source.Record, now time.Time, stats *Stats) error {
	if record.SourceKey == "" {
		return fmt.Errorf("record has no source key")
	}
	if record.ProjectKey == "" {
		return fmt.Errorf("record has no project key")
	}

	project, err := s.ensureProject(tx, record.ProjectKey, stats)
	if err != nil {
		return err
	}

	var linkedCVE *db.CVE
	for _, cveID := range record.CVEIDs {
		cve, err := s.ensureCVE(tx, cveID, stats)
		if err != nil {
			return err
		}
		linkedCVE = cve
	}

	existing, err := tx.GetTracker(record.SourceKey)
	if err != nil {
		return fmt.Errorf("unable to look up tracker: %w", err)
	}

	tracker := db.Tracker{
		ExternalKey:  record.SourceKey,
		SourceType:   record.SourceType,
		ProjectID:    project.ID,
		Summary:      record.Summary,
		Status:       record.Status,
		Resolution:   record.Resolution,
		Priority:     record.Priority,
		Severity:     record.Severity,
		Assignee:     record.Assignee,
		Reporter:     record.Reporter,
		CreatedDate:  record.CreatedDate,
		UpdatedDate:  record.UpdatedDate,
		ResolvedDate: record.ResolvedDate,
		DueDate:      record.DueDate,
		SLADate:      record.SLADate,
		LastSyncedAt: &now,
	}
	if linkedCVE != nil {
		tracker.CVEID = &linkedCVE.ID
	}
	if record.SLADate != nil && record.ResolvedDate == nil && now.After(*record.SLADate) {
		tracker.SLABreach = true
	}

	if existing == nil {
		if err := tx.AddTracker(&tracker); err != nil {
			return fmt.Errorf("unable to add tracker: %w", err)
		}
		stats.TrackersCreated++
		return nil
	}

	tracker.ID = existing.ID
	if linkedCVE == nil {
		// a re-synced record with no CVE ids keeps any existing link
		tracker.CVEID = existing.CVEID
	}
	if err := tx.UpdateTracker(&tracker); err != nil {
		return fmt.Errorf("unable to update tracker: %w", err)
	}
	stats.TrackersUpdated++
	return nil
}

func (s *Service) ensureProject(tx db.Transaction, key string, stats *Stats) (*db.Project, error) {
	project, err := tx.GetProject(key)
	if err != nil {
		return nil, fmt.Errorf("unable to look up project %q: %w", key, err)
	}
	if project != nil {
		return project, nil
	}

	// placeholder name until config reconciliation or project discovery
	// provides a better one
	project = &db.Project{
		Key:  key,
		Name: key,
	}
	if err := tx.AddProject(project); err != nil {
		return nil, fmt.Errorf("unable to add project %q: %w", key, err)
	}
	stats.ProjectsCreated++
	log.Debugf("discovered new project %q", key)
	return project, nil
}

func (s *Service) ensureCVE(tx db.Transaction, cveID string, stats *Stats) (*db.CVE, error) {
	cve, err := tx.GetCVE(cveID)
	if err != nil {
		return nil, fmt.Errorf("unable to look up %s: %w", cveID, err)
	}
	if cve != nil {
		return cve, nil
	}

	cve = &db.CVE{
		CVEID: cveID,
	}
	if err := tx.AddCVE(cve); err != nil {
		return nil, fmt.Errorf("unable to add %s: %w", cveID, err)
	}
	stats.CVEsCreated++
	return cve, nil
}
