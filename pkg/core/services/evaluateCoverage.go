package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/metrics"
)

// EvaluateCoverage computes the coverage of one shift of the configured unit
func EvaluateCoverage(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, date time.Time, shift coverage.ShiftLabel) (*coverage.CoverageResult, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %v", coverage.ErrInvalidShift, shift)
	}
	day := coverage.Day(date)

	logger.Debug("Evaluating coverage", zap.String("date", formatDay(day)), zap.Stringer("shift", shift))

	snapshot, err := loadSnapshot(ctx, store, cfg.UnitID, day, day, logger)
	if err != nil {
		return nil, err
	}

	result, err := coverage.EvaluateRoster(day, shift, snapshot.roster, snapshot.demand, snapshot.index)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate coverage: %w", err)
	}

	metrics.RecordEvaluation(result)

	logger.Info("Coverage evaluated",
		zap.String("date", result.Date),
		zap.String("shift", result.Shift),
		zap.Int("needed", result.Needed),
		zap.Int("have", result.Have),
		zap.Int("missing", result.MissingCount()),
		zap.Bool("satisfied", result.IsSatisfied))

	return result, nil
}
