package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/metrics"
)

// maxReportDays bounds rules without COUNT or UNTIL
const maxReportDays = 366

// SkippedShift is a (date, shift) removed from the report by an exclusion
type SkippedShift struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

// CoverageReportResult is the coverage of every reported shift
type CoverageReportResult struct {
	ID     string `json:"id"`
	UnitID string `json:"unitId"`
	From   string `json:"from"`
	To     string `json:"to"`

	Shifts  []*coverage.CoverageResult `json:"shifts"`
	Skipped []SkippedShift             `json:"skipped"`
}

// Unsatisfied returns the shifts that are short of staff, in report order
func (r *CoverageReportResult) Unsatisfied() []*coverage.CoverageResult {
	var unsatisfied []*coverage.CoverageResult
	for _, s := range r.Shifts {
		if !s.IsSatisfied {
			unsatisfied = append(unsatisfied, s)
		}
	}
	return unsatisfied
}

// reportDates expands rule from start, bounded to maxReportDays
func reportDates(rule string, start time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report rrule: %w", err)
	}
	r.DTStart(start)

	occurrences := r.Between(start, start.AddDate(0, 0, maxReportDays), true)

	seen := make(map[string]bool)
	dates := make([]time.Time, 0, len(occurrences))
	for _, o := range occurrences {
		day := coverage.Day(o)
		if key := formatDay(day); !seen[key] {
			seen[key] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// excludedShifts maps each date key to the shifts the exclusions remove on it
func excludedShifts(exclusions []config.ReportExclusion, from, to time.Time) (map[string]map[coverage.ShiftLabel]bool, error) {
	excluded := make(map[string]map[coverage.ShiftLabel]bool)
	for i, exclusion := range exclusions {
		r, err := rrule.StrToRRule(exclusion.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for exclusion %d: %w", i, err)
		}
		shifts, err := exclusion.ExcludedShifts()
		if err != nil {
			return nil, fmt.Errorf("exclusion %d: %w", i, err)
		}

		r.DTStart(from)
		for _, o := range r.Between(from, to, true) {
			key := formatDay(coverage.Day(o))
			if excluded[key] == nil {
				excluded[key] = make(map[coverage.ShiftLabel]bool)
			}
			for _, s := range shifts {
				excluded[key][s] = true
			}
		}
	}
	return excluded, nil
}

// CoverageReport evaluates every shift on the dates cfg.ReportRRule expands to from start,
// except those removed by cfg.ReportExclusions
func CoverageReport(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, start time.Time) (*CoverageReportResult, error) {
	start = coverage.Day(start)

	logger.Debug("Building coverage report",
		zap.String("rrule", cfg.ReportRRule),
		zap.String("start", formatDay(start)))

	dates, err := reportDates(cfg.ReportRRule, start)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("report rrule %q produces no dates from %s", cfg.ReportRRule, formatDay(start))
	}

	from, to := dates[0], dates[len(dates)-1]
	logger.Debug("Report dates expanded",
		zap.Int("count", len(dates)),
		zap.String("from", formatDay(from)),
		zap.String("to", formatDay(to)))

	excluded, err := excludedShifts(cfg.ReportExclusions, from, to)
	if err != nil {
		return nil, err
	}

	snapshot, err := loadSnapshot(ctx, store, cfg.UnitID, from, to, logger)
	if err != nil {
		return nil, err
	}

	report := &CoverageReportResult{
		ID:      uuid.New().String(),
		UnitID:  cfg.UnitID,
		From:    formatDay(from),
		To:      formatDay(to),
		Shifts:  []*coverage.CoverageResult{},
		Skipped: []SkippedShift{},
	}

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := formatDay(date)
		for _, shift := range coverage.Shifts {
			if excluded[key][shift] {
				report.Skipped = append(report.Skipped, SkippedShift{Date: key, Shift: shift.String()})
				logger.Debug("Shift excluded from report", zap.String("date", key), zap.Stringer("shift", shift))
				continue
			}

			result, err := coverage.EvaluateRoster(date, shift, snapshot.roster, snapshot.demand, snapshot.index)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate %s %v: %w", key, shift, err)
			}
			metrics.RecordEvaluation(result)
			report.Shifts = append(report.Shifts, result)
		}
	}

	unsatisfied := len(report.Unsatisfied())
	metrics.UnsatisfiedShifts.Set(float64(unsatisfied))

	logger.Info("Coverage report built",
		zap.String("report_id", report.ID),
		zap.String("from", report.From),
		zap.String("to", report.To),
		zap.Int("shifts", len(report.Shifts)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("unsatisfied", unsatisfied))

	return report, nil
}
