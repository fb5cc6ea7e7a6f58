package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/shift-cockpit/pkg/db"
)

const dateLayout = "2006-01-02"

var _ db.Database = (*DB)(nil)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetDemandLines retrieves the demand lines of a unit
func (d *DB) GetDemandLines(ctx context.Context, unitID string) ([]db.DemandLine, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, unit_id, qualification_id, count, valid_from, valid_to, is_standing,
			shift_filter, shift_window_start, shift_window_end, weekly_pattern
		FROM demand_line
		WHERE unit_id = $1
		ORDER BY id
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query demand lines: %w", err)
	}
	defer rows.Close()

	var lines []db.DemandLine
	for rows.Next() {
		var l db.DemandLine
		var validFrom, validTo *time.Time
		var shiftFilter, windowStart, windowEnd, pattern *string
		if err := rows.Scan(&l.ID, &l.UnitID, &l.QualificationID, &l.Count, &validFrom, &validTo, &l.IsStanding,
			&shiftFilter, &windowStart, &windowEnd, &pattern); err != nil {
			return nil, fmt.Errorf("failed to scan demand line: %w", err)
		}
		l.ValidFrom = formatDate(validFrom)
		l.ValidTo = formatDate(validTo)
		l.ShiftFilter = derefString(shiftFilter)
		l.ShiftWindowStart = derefString(windowStart)
		l.ShiftWindowEnd = derefString(windowEnd)
		l.WeeklyPattern = derefString(pattern)
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating demand lines: %w", err)
	}

	return lines, nil
}

// GetQualificationCatalog retrieves every qualification
func (d *DB) GetQualificationCatalog(ctx context.Context) ([]db.Qualification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, short_code, priority_position, operationally_relevant, active
		FROM qualification
		ORDER BY priority_position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifications: %w", err)
	}
	defer rows.Close()

	var catalog []db.Qualification
	for rows.Next() {
		var q db.Qualification
		if err := rows.Scan(&q.ID, &q.ShortCode, &q.PriorityPosition, &q.OperationallyRelevant, &q.Active); err != nil {
			return nil, fmt.Errorf("failed to scan qualification: %w", err)
		}
		catalog = append(catalog, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating qualifications: %w", err)
	}

	return catalog, nil
}

// GetQualificationAssignments retrieves every qualification assignment
func (d *DB) GetQualificationAssignments(ctx context.Context) ([]db.QualificationAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, qualification_id, valid_from, valid_to
		FROM qualification_assignment
		ORDER BY employee_id, qualification_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualification assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.QualificationAssignment
	for rows.Next() {
		var a db.QualificationAssignment
		var validFrom, validTo *time.Time
		if err := rows.Scan(&a.EmployeeID, &a.QualificationID, &validFrom, &validTo); err != nil {
			return nil, fmt.Errorf("failed to scan qualification assignment: %w", err)
		}
		a.ValidFrom = formatDate(validFrom)
		a.ValidTo = formatDate(validTo)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating qualification assignments: %w", err)
	}

	return assignments, nil
}

// GetEmployees retrieves the employees of a unit
func (d *DB) GetEmployees(ctx context.Context, unitID string) ([]db.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, unit_id, first_name, last_name, email
		FROM employee
		WHERE unit_id = $1
		ORDER BY id
	`, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var e db.Employee
		var email *string
		if err := rows.Scan(&e.ID, &e.UnitID, &e.FirstName, &e.LastName, &email); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Email = derefString(email)
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetRosterEntries retrieves a unit's roster entries dated from..to inclusive
func (d *DB) GetRosterEntries(ctx context.Context, unitID, from, to string) ([]db.RosterEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT unit_id, employee_id, date, status, excluded
		FROM roster_entry
		WHERE unit_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date, employee_id
	`, unitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster entries: %w", err)
	}
	defer rows.Close()

	var entries []db.RosterEntry
	for rows.Next() {
		var e db.RosterEntry
		var date time.Time
		if err := rows.Scan(&e.UnitID, &e.EmployeeID, &date, &e.Status, &e.Excluded); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		e.Date = date.Format(dateLayout)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster entries: %w", err)
	}

	return entries, nil
}
