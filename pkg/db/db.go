package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/shift-cockpit/pkg/sheetssql"
)

var _ Database = (*DB)(nil)

// DB provides snapshot operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{ssql: ssql}
}

// Schema is the SheetsSQL schema of every record kind
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(Models()...)
}

// GetDemandLines retrieves the demand lines of a unit
func (db *DB) GetDemandLines(ctx context.Context, unitID string) ([]DemandLine, error) {
	lines, err := sheetssql.SelectWhere(db.ssql, func(l DemandLine) bool { return l.UnitID == unitID })
	if err != nil {
		return nil, fmt.Errorf("failed to get demand lines: %w", err)
	}
	return lines, nil
}

// GetQualificationCatalog retrieves every qualification
func (db *DB) GetQualificationCatalog(ctx context.Context) ([]Qualification, error) {
	catalog, err := sheetssql.SelectAll[Qualification](db.ssql)
	if err != nil {
		return nil, fmt.Errorf("failed to get qualification catalog: %w", err)
	}
	return catalog, nil
}

// GetQualificationAssignments retrieves every qualification assignment
func (db *DB) GetQualificationAssignments(ctx context.Context) ([]QualificationAssignment, error) {
	assignments, err := sheetssql.SelectAll[QualificationAssignment](db.ssql)
	if err != nil {
		return nil, fmt.Errorf("failed to get qualification assignments: %w", err)
	}
	return assignments, nil
}

// GetEmployees retrieves the employees of a unit
func (db *DB) GetEmployees(ctx context.Context, unitID string) ([]Employee, error) {
	employees, err := sheetssql.SelectWhere(db.ssql, func(e Employee) bool { return e.UnitID == unitID })
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	return employees, nil
}

// GetRosterEntries retrieves a unit's roster entries dated from..to inclusive
func (db *DB) GetRosterEntries(ctx context.Context, unitID, from, to string) ([]RosterEntry, error) {
	entries, err := sheetssql.SelectWhere(db.ssql, func(e RosterEntry) bool {
		return e.UnitID == unitID && e.Date >= from && e.Date <= to
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get roster entries: %w", err)
	}
	return entries, nil
}

// ImportSnapshot upserts every record of the snapshot into its table by natural key.
// Each table is read, merged and rewritten; rows keep their first-seen order.
func (db *DB) ImportSnapshot(ctx context.Context, snapshot *Snapshot) error {
	current, err := db.loadSnapshot()
	if err != nil {
		return err
	}
	current.Merge(snapshot)

	if err := sheetssql.ReplaceAll(db.ssql, current.Qualifications); err != nil {
		return fmt.Errorf("failed to write qualifications: %w", err)
	}
	if err := sheetssql.ReplaceAll(db.ssql, current.Employees); err != nil {
		return fmt.Errorf("failed to write employees: %w", err)
	}
	if err := sheetssql.ReplaceAll(db.ssql, current.QualificationAssignments); err != nil {
		return fmt.Errorf("failed to write qualification assignments: %w", err)
	}
	if err := sheetssql.ReplaceAll(db.ssql, current.DemandLines); err != nil {
		return fmt.Errorf("failed to write demand lines: %w", err)
	}
	if err := sheetssql.ReplaceAll(db.ssql, current.RosterEntries); err != nil {
		return fmt.Errorf("failed to write roster entries: %w", err)
	}
	return nil
}

func (db *DB) loadSnapshot() (*Snapshot, error) {
	var (
		snapshot Snapshot
		err      error
	)
	if snapshot.DemandLines, err = sheetssql.SelectAll[DemandLine](db.ssql); err != nil {
		return nil, fmt.Errorf("failed to read demand lines: %w", err)
	}
	if snapshot.Qualifications, err = sheetssql.SelectAll[Qualification](db.ssql); err != nil {
		return nil, fmt.Errorf("failed to read qualifications: %w", err)
	}
	if snapshot.QualificationAssignments, err = sheetssql.SelectAll[QualificationAssignment](db.ssql); err != nil {
		return nil, fmt.Errorf("failed to read qualification assignments: %w", err)
	}
	if snapshot.Employees, err = sheetssql.SelectAll[Employee](db.ssql); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	if snapshot.RosterEntries, err = sheetssql.SelectAll[RosterEntry](db.ssql); err != nil {
		return nil, fmt.Errorf("failed to read roster entries: %w", err)
	}
	return &snapshot, nil
}
