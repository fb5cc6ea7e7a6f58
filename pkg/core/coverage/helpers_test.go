package coverage

import (
	"time"
)

// 2025-01-15 is a Wednesday
const wednesday = "2025-01-15"

func day(s string) time.Time {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func shiftPtr(s ShiftLabel) *ShiftLabel {
	return &s
}

func standardCatalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: "q-k", ShortCode: "K", PriorityPosition: 1, OperationallyRelevant: true, Active: true},
		{ID: "q-l", ShortCode: "L", PriorityPosition: 2, OperationallyRelevant: true, Active: true},
		{ID: "q-m", ShortCode: "M", PriorityPosition: 3, OperationallyRelevant: true, Active: true},
		{ID: "q-old", ShortCode: "OLD", PriorityPosition: 0, OperationallyRelevant: true, Active: false},
		{ID: "q-admin", ShortCode: "ADM", PriorityPosition: 0, OperationallyRelevant: false, Active: true},
	}
}

// holds builds unbounded assignments: holds("e1", "q-k", "q-l")
func holds(employeeID string, qualificationIDs ...string) []QualificationAssignment {
	out := make([]QualificationAssignment, 0, len(qualificationIDs))
	for _, q := range qualificationIDs {
		out = append(out, QualificationAssignment{EmployeeID: employeeID, QualificationID: q})
	}
	return out
}

func indexOf(catalog []CatalogEntry, groups ...[]QualificationAssignment) *QualificationIndex {
	var all []QualificationAssignment
	for _, g := range groups {
		all = append(all, g...)
	}
	return NewQualificationIndex(all, catalog)
}

// onDay builds roster entries for one date: onDay("2025-01-15", map[string]DayStatus{...})
func onDay(date string, statuses map[string]DayStatus) []RosterEntry {
	out := make([]RosterEntry, 0, len(statuses))
	for id, status := range statuses {
		out = append(out, RosterEntry{EmployeeID: id, Date: day(date), Status: status})
	}
	return out
}
