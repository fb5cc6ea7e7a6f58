package coverage

import (
	"sort"
	"time"
)

// QualificationIndex answers which participating qualifications an employee holds on a date.
// It is built once per snapshot and never mutated afterwards.
type QualificationIndex struct {
	catalog    map[string]CatalogEntry
	byEmployee map[string][]QualificationAssignment
}

// NewQualificationIndex builds an index from raw assignments and the qualification catalog.
// Catalog entries that are inactive or not operationally relevant are dropped.
func NewQualificationIndex(assignments []QualificationAssignment, catalog []CatalogEntry) *QualificationIndex {
	idx := &QualificationIndex{
		catalog:    make(map[string]CatalogEntry, len(catalog)),
		byEmployee: make(map[string][]QualificationAssignment),
	}

	for _, entry := range catalog {
		if entry.Participates() {
			idx.catalog[entry.ID] = entry
		}
	}

	for _, a := range assignments {
		if _, ok := idx.catalog[a.QualificationID]; !ok {
			continue
		}
		idx.byEmployee[a.EmployeeID] = append(idx.byEmployee[a.EmployeeID], a)
	}

	return idx
}

// Entry returns the participating catalog entry for a qualification
func (idx *QualificationIndex) Entry(qualificationID string) (CatalogEntry, bool) {
	entry, ok := idx.catalog[qualificationID]
	return entry, ok
}

// QualificationsOf returns the qualification IDs the employee holds on the date,
// ordered by priority position, ties broken by qualification ID
func (idx *QualificationIndex) QualificationsOf(employeeID string, date time.Time) []string {
	day := Day(date)
	seen := make(map[string]bool)
	ids := make([]string, 0)

	for _, a := range idx.byEmployee[employeeID] {
		if !assignmentValidOn(a, day) || seen[a.QualificationID] {
			continue
		}
		seen[a.QualificationID] = true
		ids = append(ids, a.QualificationID)
	}

	sort.Slice(ids, func(i, j int) bool {
		return idx.lessQualification(ids[i], ids[j])
	})

	return ids
}

// lessQualification orders qualification IDs by priority position, then ID
func (idx *QualificationIndex) lessQualification(a, b string) bool {
	pa := idx.catalog[a].PriorityPosition
	pb := idx.catalog[b].PriorityPosition
	if pa != pb {
		return pa < pb
	}
	return a < b
}

func assignmentValidOn(a QualificationAssignment, day time.Time) bool {
	if a.ValidFrom != nil && day.Before(Day(*a.ValidFrom)) {
		return false
	}
	if a.ValidTo != nil && day.After(Day(*a.ValidTo)) {
		return false
	}
	return true
}
