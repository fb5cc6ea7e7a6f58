package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-cockpit/pkg/db"
)

// nullable maps the empty string to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Upserts keyed by each record's natural key, so importing the same snapshot twice
// leaves the tables unchanged
const (
	upsertQualification = `
		INSERT INTO qualification (id, short_code, priority_position, operationally_relevant, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			short_code = EXCLUDED.short_code,
			priority_position = EXCLUDED.priority_position,
			operationally_relevant = EXCLUDED.operationally_relevant,
			active = EXCLUDED.active`

	upsertEmployee = `
		INSERT INTO employee (id, unit_id, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email`

	upsertQualificationAssignment = `
		INSERT INTO qualification_assignment (employee_id, qualification_id, valid_from, valid_to)
		VALUES ($1, $2, $3::date, $4::date)
		ON CONFLICT (employee_id, qualification_id) DO UPDATE SET
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to`

	upsertDemandLine = `
		INSERT INTO demand_line (id, unit_id, qualification_id, count, valid_from, valid_to, is_standing,
			shift_filter, shift_window_start, shift_window_end, weekly_pattern)
		VALUES ($1, $2, $3, $4, $5::date, $6::date, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id,
			qualification_id = EXCLUDED.qualification_id,
			count = EXCLUDED.count,
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to,
			is_standing = EXCLUDED.is_standing,
			shift_filter = EXCLUDED.shift_filter,
			shift_window_start = EXCLUDED.shift_window_start,
			shift_window_end = EXCLUDED.shift_window_end,
			weekly_pattern = EXCLUDED.weekly_pattern`

	upsertRosterEntry = `
		INSERT INTO roster_entry (unit_id, employee_id, date, status, excluded)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (unit_id, employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			excluded = EXCLUDED.excluded`
)

// ImportSnapshot upserts every record of the snapshot in one transaction
func (d *DB) ImportSnapshot(ctx context.Context, snapshot *db.Snapshot) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}

	for _, q := range snapshot.Qualifications {
		batch.Queue(upsertQualification, q.ID, q.ShortCode, q.PriorityPosition, q.OperationallyRelevant, q.Active)
	}
	for _, e := range snapshot.Employees {
		batch.Queue(upsertEmployee, e.ID, e.UnitID, e.FirstName, e.LastName, nullable(e.Email))
	}
	for _, a := range snapshot.QualificationAssignments {
		batch.Queue(upsertQualificationAssignment, a.EmployeeID, a.QualificationID, nullable(a.ValidFrom), nullable(a.ValidTo))
	}
	for _, l := range snapshot.DemandLines {
		batch.Queue(upsertDemandLine, l.ID, l.UnitID, l.QualificationID, l.Count, nullable(l.ValidFrom), nullable(l.ValidTo), l.IsStanding,
			nullable(l.ShiftFilter), nullable(l.ShiftWindowStart), nullable(l.ShiftWindowEnd), nullable(l.WeeklyPattern))
	}
	for _, r := range snapshot.RosterEntries {
		batch.Queue(upsertRosterEntry, r.UnitID, r.EmployeeID, r.Date, r.Status, r.Excluded)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
