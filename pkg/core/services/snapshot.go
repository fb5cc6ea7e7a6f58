package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/model"
	"github.com/jakechorley/shift-cockpit/pkg/db"
)

// engineSnapshot is what the engine needs for one unit over a date window
type engineSnapshot struct {
	demand    []coverage.DemandLine
	index     *coverage.QualificationIndex
	roster    *coverage.Roster
	employees []model.Employee
}

// loadSnapshot fetches and converts a unit's records, with roster entries from..to inclusive
func loadSnapshot(ctx context.Context, store db.SnapshotStore, unitID string, from, to time.Time, logger *zap.Logger) (*engineSnapshot, error) {
	logger.Debug("Loading snapshot",
		zap.String("unit_id", unitID),
		zap.String("from", formatDay(from)),
		zap.String("to", formatDay(to)))

	demandRecords, err := store.GetDemandLines(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch demand lines: %w", err)
	}
	demand, err := convertToDemandLines(demandRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert demand lines: %w", err)
	}

	catalogRecords, err := store.GetQualificationCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualification catalog: %w", err)
	}

	assignmentRecords, err := store.GetQualificationAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualification assignments: %w", err)
	}
	assignments, err := convertToAssignments(assignmentRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert qualification assignments: %w", err)
	}

	rosterRecords, err := store.GetRosterEntries(ctx, unitID, formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster entries: %w", err)
	}
	rosterEntries, err := convertToRosterEntries(rosterRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to convert roster entries: %w", err)
	}

	employeeRecords, err := store.GetEmployees(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	logger.Debug("Snapshot loaded",
		zap.Int("demand_lines", len(demand)),
		zap.Int("catalog_entries", len(catalogRecords)),
		zap.Int("assignments", len(assignments)),
		zap.Int("roster_entries", len(rosterEntries)),
		zap.Int("employees", len(employeeRecords)))

	return &engineSnapshot{
		demand:    demand,
		index:     coverage.NewQualificationIndex(assignments, convertToCatalog(catalogRecords)),
		roster:    coverage.NewRoster(rosterEntries),
		employees: convertToEmployees(employeeRecords),
	}, nil
}
