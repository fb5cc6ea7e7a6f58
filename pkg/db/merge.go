package db

import "fmt"

// keyed records carry a natural key; two records with the same key are the same record
type keyed interface {
	Key() string
}

// Key is the demand line id
func (l DemandLine) Key() string { return l.ID }

// Key is the qualification id
func (q Qualification) Key() string { return q.ID }

// Key is the employee id
func (e Employee) Key() string { return e.ID }

// Key is the employee and qualification pair; an employee holds a qualification once
func (a QualificationAssignment) Key() string {
	return a.EmployeeID + "\x00" + a.QualificationID
}

// Key is the unit, employee and date triple
func (r RosterEntry) Key() string {
	return r.UnitID + "\x00" + r.EmployeeID + "\x00" + r.Date
}

// upsert returns current with incoming applied: a record whose key is already present
// replaces it in place, a new key is appended. Later records win.
func upsert[T keyed](current, incoming []T) []T {
	merged := make([]T, 0, len(current)+len(incoming))
	positions := make(map[string]int, len(current)+len(incoming))
	for _, record := range append(append([]T{}, current...), incoming...) {
		if i, ok := positions[record.Key()]; ok {
			merged[i] = record
			continue
		}
		positions[record.Key()] = len(merged)
		merged = append(merged, record)
	}
	return merged
}

// Merge upserts every record of other into s by natural key
func (s *Snapshot) Merge(other *Snapshot) {
	s.DemandLines = upsert(s.DemandLines, other.DemandLines)
	s.Qualifications = upsert(s.Qualifications, other.Qualifications)
	s.QualificationAssignments = upsert(s.QualificationAssignments, other.QualificationAssignments)
	s.Employees = upsert(s.Employees, other.Employees)
	s.RosterEntries = upsert(s.RosterEntries, other.RosterEntries)
}

func firstDuplicate[T keyed](records []T) (T, bool) {
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if _, ok := seen[record.Key()]; ok {
			return record, true
		}
		seen[record.Key()] = struct{}{}
	}
	var zero T
	return zero, false
}

// CheckKeys reports the first record whose natural key repeats within the snapshot
func (s *Snapshot) CheckKeys() error {
	if l, ok := firstDuplicate(s.DemandLines); ok {
		return fmt.Errorf("duplicate demand line id %q", l.ID)
	}
	if q, ok := firstDuplicate(s.Qualifications); ok {
		return fmt.Errorf("duplicate qualification id %q", q.ID)
	}
	if a, ok := firstDuplicate(s.QualificationAssignments); ok {
		return fmt.Errorf("duplicate qualification assignment %q/%q", a.EmployeeID, a.QualificationID)
	}
	if e, ok := firstDuplicate(s.Employees); ok {
		return fmt.Errorf("duplicate employee id %q", e.ID)
	}
	if r, ok := firstDuplicate(s.RosterEntries); ok {
		return fmt.Errorf("duplicate roster entry %q/%q/%s", r.UnitID, r.EmployeeID, r.Date)
	}
	return nil
}
