package services

import (
	"fmt"
	"time"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/model"
	"github.com/jakechorley/shift-cockpit/pkg/db"
)

// parseOptionalDate parses a stored date; the empty string is unbounded
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := coverage.ParseDay(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseOptionalShift parses a stored shift label; the empty string is unset
func parseOptionalShift(s string) (*coverage.ShiftLabel, error) {
	if s == "" {
		return nil, nil
	}
	shift, err := coverage.ParseShiftLabel(s)
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// convertToDemandLines converts demand line records to engine demand lines
func convertToDemandLines(records []db.DemandLine) ([]coverage.DemandLine, error) {
	lines := make([]coverage.DemandLine, 0, len(records))
	for _, r := range records {
		line := coverage.DemandLine{
			ID:              r.ID,
			QualificationID: r.QualificationID,
			Count:           r.Count,
			IsStanding:      r.IsStanding,
		}

		var err error
		if line.ValidFrom, err = parseOptionalDate(r.ValidFrom); err != nil {
			return nil, fmt.Errorf("demand line %s valid_from: %w", r.ID, err)
		}
		if line.ValidTo, err = parseOptionalDate(r.ValidTo); err != nil {
			return nil, fmt.Errorf("demand line %s valid_to: %w", r.ID, err)
		}
		if line.ShiftFilter, err = parseOptionalShift(r.ShiftFilter); err != nil {
			return nil, fmt.Errorf("demand line %s shift_filter: %w", r.ID, err)
		}
		if line.ShiftWindowStart, err = parseOptionalShift(r.ShiftWindowStart); err != nil {
			return nil, fmt.Errorf("demand line %s shift_window_start: %w", r.ID, err)
		}
		if line.ShiftWindowEnd, err = parseOptionalShift(r.ShiftWindowEnd); err != nil {
			return nil, fmt.Errorf("demand line %s shift_window_end: %w", r.ID, err)
		}
		if line.WeeklyPattern, err = coverage.ParseWeeklyPattern(r.WeeklyPattern); err != nil {
			return nil, fmt.Errorf("demand line %s: %w", r.ID, err)
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// convertToCatalog converts qualification records to catalog entries
func convertToCatalog(records []db.Qualification) []coverage.CatalogEntry {
	catalog := make([]coverage.CatalogEntry, len(records))
	for i, r := range records {
		catalog[i] = coverage.CatalogEntry{
			ID:                    r.ID,
			ShortCode:             r.ShortCode,
			PriorityPosition:      r.PriorityPosition,
			OperationallyRelevant: r.OperationallyRelevant,
			Active:                r.Active,
		}
	}
	return catalog
}

// convertToAssignments converts qualification assignment records
func convertToAssignments(records []db.QualificationAssignment) ([]coverage.QualificationAssignment, error) {
	assignments := make([]coverage.QualificationAssignment, 0, len(records))
	for _, r := range records {
		a := coverage.QualificationAssignment{
			EmployeeID:      r.EmployeeID,
			QualificationID: r.QualificationID,
		}

		var err error
		if a.ValidFrom, err = parseOptionalDate(r.ValidFrom); err != nil {
			return nil, fmt.Errorf("assignment %s/%s valid_from: %w", r.EmployeeID, r.QualificationID, err)
		}
		if a.ValidTo, err = parseOptionalDate(r.ValidTo); err != nil {
			return nil, fmt.Errorf("assignment %s/%s valid_to: %w", r.EmployeeID, r.QualificationID, err)
		}

		assignments = append(assignments, a)
	}
	return assignments, nil
}

// convertToRosterEntries converts roster records to engine roster entries
func convertToRosterEntries(records []db.RosterEntry) ([]coverage.RosterEntry, error) {
	entries := make([]coverage.RosterEntry, 0, len(records))
	for _, r := range records {
		date, err := coverage.ParseDay(r.Date)
		if err != nil {
			return nil, fmt.Errorf("roster entry for %s: %w", r.EmployeeID, err)
		}
		status, err := coverage.ParseDayStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("roster entry for %s on %s: %w", r.EmployeeID, r.Date, err)
		}
		entries = append(entries, coverage.RosterEntry{
			EmployeeID: r.EmployeeID,
			Date:       date,
			Status:     status,
			Excluded:   r.Excluded,
		})
	}
	return entries, nil
}

// convertToEmployees converts employee records and computes display names
func convertToEmployees(records []db.Employee) []model.Employee {
	employees := make([]model.Employee, len(records))
	for i, r := range records {
		employees[i] = model.Employee{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
		}
	}
	model.ComputeDisplayNames(employees)
	return employees
}

// getEmployeeIDs extracts employee IDs (useful for logging and candidate pools)
func getEmployeeIDs(employees []model.Employee) []string {
	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids
}

func formatDay(t time.Time) string {
	return t.Format(coverage.DateLayout)
}
