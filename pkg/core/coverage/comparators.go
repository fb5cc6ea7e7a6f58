package coverage

import "math"

// resolvedLine is a demand line that applies to the evaluated shift, joined with its catalog entry
type resolvedLine struct {
	line  DemandLine
	entry CatalogEntry
}

// candidate is an on-duty employee annotated with the qualifications held that day
type candidate struct {
	employeeID     string
	qualifications []string // ordered by priority position
	bestPosition   int
}

func newCandidate(employeeID string, qualifications []string, index *QualificationIndex) candidate {
	best := math.MaxInt
	if len(qualifications) > 0 {
		if entry, ok := index.Entry(qualifications[0]); ok {
			best = entry.PriorityPosition
		}
	}
	return candidate{
		employeeID:     employeeID,
		qualifications: qualifications,
		bestPosition:   best,
	}
}

func (c candidate) holds(qualificationID string) bool {
	for _, q := range c.qualifications {
		if q == qualificationID {
			return true
		}
	}
	return false
}

// lessDemandLine orders demand lines so the scarcest qualification is staffed first.
//
// Tie-break order:
//  1. catalog priority position, ascending
//  2. qualification ID, ascending
//  3. demand line ID, ascending
func lessDemandLine(a, b resolvedLine) bool {
	if a.entry.PriorityPosition != b.entry.PriorityPosition {
		return a.entry.PriorityPosition < b.entry.PriorityPosition
	}
	if a.line.QualificationID != b.line.QualificationID {
		return a.line.QualificationID < b.line.QualificationID
	}
	return a.line.ID < b.line.ID
}

// lessCandidate orders candidates so specialists are spent before generalists.
//
// Tie-break order:
//  1. number of qualifications held, ascending
//  2. priority position of the best qualification, ascending
//  3. employee ID, ascending
func lessCandidate(a, b candidate) bool {
	if len(a.qualifications) != len(b.qualifications) {
		return len(a.qualifications) < len(b.qualifications)
	}
	if a.bestPosition != b.bestPosition {
		return a.bestPosition < b.bestPosition
	}
	return a.employeeID < b.employeeID
}
