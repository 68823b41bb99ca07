package monitor

import "github.com/wagoodman/go-progress"

// Sync exposes live counters for an in-flight sync run.
type Sync struct {
	RecordsProcessed progress.Monitorable
	TrackersWritten  progress.Monitorable
	RecordErrors     progress.Monitorable
}
