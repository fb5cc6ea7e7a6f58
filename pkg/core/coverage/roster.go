package coverage

import (
	"sort"
	"time"
)

// Roster is a read-only lookup of resolved day statuses.
// Employees without an entry on a date read as off.
type Roster struct {
	entries map[string]map[string]RosterEntry // date -> employee -> entry
}

// NewRoster builds a roster from resolved entries. Later entries for the same
// employee and date replace earlier ones.
func NewRoster(entries []RosterEntry) *Roster {
	r := &Roster{entries: make(map[string]map[string]RosterEntry)}
	for _, e := range entries {
		key := Day(e.Date).Format(DateLayout)
		if r.entries[key] == nil {
			r.entries[key] = make(map[string]RosterEntry)
		}
		r.entries[key][e.EmployeeID] = e
	}
	return r
}

// StatusOf returns what the employee is doing on the date
func (r *Roster) StatusOf(employeeID string, date time.Time) DayStatus {
	entry, ok := r.entries[Day(date).Format(DateLayout)][employeeID]
	if !ok || entry.Excluded {
		return StatusOff
	}
	return entry.Status
}

// ShiftOf returns the working shift of the employee on the date, if any
func (r *Roster) ShiftOf(employeeID string, date time.Time) (ShiftLabel, bool) {
	return r.StatusOf(employeeID, date).Shift()
}

// OnShift returns the employees working the shift on the date, sorted by ID
func (r *Roster) OnShift(date time.Time, shift ShiftLabel) []string {
	ids := make([]string, 0)
	for id, entry := range r.entries[Day(date).Format(DateLayout)] {
		if entry.Excluded {
			continue
		}
		if s, ok := entry.Status.Shift(); ok && s == shift {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Employees returns every non-excluded employee with an entry on the date, sorted by ID
func (r *Roster) Employees(date time.Time) []string {
	ids := make([]string, 0)
	for id, entry := range r.entries[Day(date).Format(DateLayout)] {
		if !entry.Excluded {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// IsExcluded reports whether the collaborator masked the employee on the date
func (r *Roster) IsExcluded(employeeID string, date time.Time) bool {
	entry, ok := r.entries[Day(date).Format(DateLayout)][employeeID]
	return ok && entry.Excluded
}
