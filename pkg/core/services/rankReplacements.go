package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/model"
	"github.com/jakechorley/shift-cockpit/pkg/db"
)

// neighbourDays is how far either side of the target date the classifier looks
const neighbourDays = 2

// RankedReplacement is a replacement candidate with the name schedulers know them by
type RankedReplacement struct {
	coverage.Replacement
	DisplayName string `json:"displayName"`
}

// RankReplacements ranks the unit's free employees as candidates to fill a shift
func RankReplacements(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, date time.Time, shift coverage.ShiftLabel, options *coverage.ReplacementOptions) ([]RankedReplacement, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %v", coverage.ErrInvalidShift, shift)
	}
	day := coverage.Day(date)

	logger.Debug("Ranking replacements", zap.String("date", formatDay(day)), zap.Stringer("shift", shift))

	snapshot, err := loadSnapshot(ctx, store, cfg.UnitID,
		day.AddDate(0, 0, -neighbourDays), day.AddDate(0, 0, neighbourDays), logger)
	if err != nil {
		return nil, err
	}

	pool := getEmployeeIDs(snapshot.employees)
	logger.Debug("Replacement pool", zap.Strings("employee_ids", pool))

	ranked, err := coverage.RankReplacements(day, shift, pool, snapshot.roster, snapshot.demand, snapshot.index, options)
	if err != nil {
		return nil, fmt.Errorf("failed to rank replacements: %w", err)
	}

	names := model.DisplayNames(snapshot.employees)
	results := make([]RankedReplacement, len(ranked))
	for i, r := range ranked {
		results[i] = RankedReplacement{Replacement: r, DisplayName: names[r.EmployeeID]}
		logger.Debug("Replacement candidate",
			zap.Int("rank", r.Rank),
			zap.String("employee_id", r.EmployeeID),
			zap.Stringer("signal", r.Signal),
			zap.Strings("fills_missing", r.FillsMissing),
			zap.Bool("satisfies", r.Satisfies))
	}

	logger.Info("Replacements ranked", zap.Int("pool", len(pool)), zap.Int("candidates", len(results)))

	return results, nil
}
