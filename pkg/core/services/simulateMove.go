package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/metrics"
)

// SimulateMove evaluates moving one employee between two shifts of the same day.
// Precondition failures are returned as *coverage.MoveRejectedError.
func SimulateMove(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, req coverage.MoveRequest) (*coverage.SwapResult, error) {
	req.Date = coverage.Day(req.Date)

	logger.Debug("Simulating move",
		zap.String("employee_id", req.EmployeeID),
		zap.Stringer("source", req.Source),
		zap.Stringer("destination", req.Destination),
		zap.String("date", formatDay(req.Date)))

	snapshot, err := loadSnapshot(ctx, store, cfg.UnitID, req.Date, req.Date, logger)
	if err != nil {
		return nil, err
	}

	result, err := coverage.SimulateMove(req, snapshot.roster, snapshot.demand, snapshot.index)
	if err != nil {
		var rejected *coverage.MoveRejectedError
		if errors.As(err, &rejected) {
			metrics.MovesRejectedTotal.Inc()
			logger.Info("Move rejected", zap.String("employee_id", req.EmployeeID), zap.Error(rejected.Err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to simulate move: %w", err)
	}

	logger.Info("Move simulated",
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("feasible", result.Feasible),
		zap.Int("source_missing", result.SourceCoverage.MissingCount()),
		zap.Int("destination_missing", result.DestinationCoverage.MissingCount()))

	return result, nil
}

// ScreenMoves simulates moving each employee on the source shift to the destination shift.
// Concurrency is capped by cfg.ScreeningConcurrency.
func ScreenMoves(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, source, destination coverage.ShiftLabel, date time.Time) ([]coverage.ScreenedMove, error) {
	day := coverage.Day(date)

	logger.Debug("Screening moves",
		zap.Stringer("source", source),
		zap.Stringer("destination", destination),
		zap.String("date", formatDay(day)),
		zap.Int("concurrency", cfg.ScreeningConcurrency))

	snapshot, err := loadSnapshot(ctx, store, cfg.UnitID, day, day, logger)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	moves, err := coverage.ScreenMoves(ctx, source, destination, day, snapshot.roster, snapshot.demand, snapshot.index, cfg.ScreeningConcurrency)
	if err != nil {
		var rejected *coverage.MoveRejectedError
		if errors.As(err, &rejected) {
			metrics.MovesRejectedTotal.Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to screen moves: %w", err)
	}
	metrics.RecordScreening(moves, time.Since(started))

	feasible := 0
	for _, m := range moves {
		if m.Result.Feasible {
			feasible++
		}
	}

	logger.Info("Moves screened",
		zap.Int("candidates", len(moves)),
		zap.Int("feasible", feasible))

	return moves, nil
}
