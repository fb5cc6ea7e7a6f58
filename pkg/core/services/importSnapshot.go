package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/pkg/db"
)

// ImportSummary counts the records imported per kind
type ImportSummary struct {
	DemandLines              int
	Qualifications           int
	QualificationAssignments int
	Employees                int
	RosterEntries            int
}

// validateSnapshot checks natural keys are unique and every record converts to an engine value
func validateSnapshot(snapshot *db.Snapshot) error {
	if err := snapshot.CheckKeys(); err != nil {
		return err
	}
	if _, err := convertToDemandLines(snapshot.DemandLines); err != nil {
		return err
	}
	if _, err := convertToAssignments(snapshot.QualificationAssignments); err != nil {
		return err
	}
	if _, err := convertToRosterEntries(snapshot.RosterEntries); err != nil {
		return err
	}
	return nil
}

// ImportSnapshot validates a snapshot and loads it into the target store
func ImportSnapshot(ctx context.Context, target db.SnapshotImporter, logger *zap.Logger, snapshot *db.Snapshot) (*ImportSummary, error) {
	logger.Debug("Validating snapshot")
	if err := validateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	summary := &ImportSummary{
		DemandLines:              len(snapshot.DemandLines),
		Qualifications:           len(snapshot.Qualifications),
		QualificationAssignments: len(snapshot.QualificationAssignments),
		Employees:                len(snapshot.Employees),
		RosterEntries:            len(snapshot.RosterEntries),
	}

	if err := target.ImportSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to import snapshot: %w", err)
	}

	logger.Info("Snapshot imported",
		zap.Int("demand_lines", summary.DemandLines),
		zap.Int("qualifications", summary.Qualifications),
		zap.Int("qualification_assignments", summary.QualificationAssignments),
		zap.Int("employees", summary.Employees),
		zap.Int("roster_entries", summary.RosterEntries))

	return summary, nil
}
