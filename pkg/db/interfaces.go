package db

import "context"

// SnapshotStore reads the snapshots the coverage engine works on.
// The file, SheetsSQL and Postgres stores all implement it.
type SnapshotStore interface {
	GetDemandLines(ctx context.Context, unitID string) ([]DemandLine, error)
	GetQualificationCatalog(ctx context.Context) ([]Qualification, error)
	GetQualificationAssignments(ctx context.Context) ([]QualificationAssignment, error)
	GetEmployees(ctx context.Context, unitID string) ([]Employee, error)
	// GetRosterEntries returns entries dated from..to inclusive (YYYY-MM-DD)
	GetRosterEntries(ctx context.Context, unitID, from, to string) ([]RosterEntry, error)
}

// SnapshotImporter upserts a bulk snapshot into a store by natural key
type SnapshotImporter interface {
	ImportSnapshot(ctx context.Context, snapshot *Snapshot) error
}

// Database is a store that can be both read and loaded
type Database interface {
	SnapshotStore
	SnapshotImporter
}
