package event

import "github.com/wagoodman/go-partybus"

const (
	// SourceSyncStarted is emitted when the reconciliation engine begins pulling records from a source
	SourceSyncStarted partybus.EventType = "cvelens-source-sync-started"

	// SourceSyncFinished is emitted after a sync run's transaction has committed
	SourceSyncFinished partybus.EventType = "cvelens-source-sync-finished"

	// TeamConfigApplied is emitted after the declarative team/project config has been reconciled
	TeamConfigApplied partybus.EventType = "cvelens-team-config-applied"
)
