package coverage

import (
	"fmt"
	"sort"
	"time"
)

// ResolveDemand returns the demand lines that apply to the shift on the date, in staffing order.
//
// Lines are dropped when:
//   - the calendar rules reject them (see AppliesOn)
//   - they are standing and a counting temporary line is active on the date
//   - their qualification has no active, operationally relevant catalog entry
//   - their count is not positive
//
// Returns ErrInvalidShift if shift is not a known label.
func ResolveDemand(lines []DemandLine, date time.Time, shift ShiftLabel, index *QualificationIndex) ([]DemandLine, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShift, shift)
	}
	resolved := resolveLines(lines, date, shift, index)
	out := make([]DemandLine, len(resolved))
	for i, r := range resolved {
		out[i] = r.line
	}
	return out, nil
}

// resolveLines expects a valid shift
func resolveLines(lines []DemandLine, date time.Time, shift ShiftLabel, index *QualificationIndex) []resolvedLine {
	suppressStanding := HasTemporaryDemand(lines, date, index)

	resolved := make([]resolvedLine, 0, len(lines))
	for _, line := range lines {
		if line.IsStanding && suppressStanding {
			continue
		}
		if !countsTowardsDemand(line, index) {
			continue
		}
		entry, _ := index.Entry(line.QualificationID)
		if !appliesOn(line, date, shift) {
			continue
		}
		resolved = append(resolved, resolvedLine{line: line, entry: entry})
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return lessDemandLine(resolved[i], resolved[j])
	})

	return resolved
}

// Evaluate computes the coverage of one shift on one day.
//
// Applicable demand lines are staffed in priority order. Each line claims up to
// Count distinct, not yet used employees holding its qualification, scanning
// candidates with the fewest qualifications first. Every employee fills at most
// one line. Shortfalls are merged per short code in staffing order.
//
// Returns ErrInvalidShift if shift is not a known label.
func Evaluate(date time.Time, shift ShiftLabel, rosterOnShift []string, demand []DemandLine, index *QualificationIndex) (*CoverageResult, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShift, shift)
	}

	day := Day(date)
	lines := resolveLines(demand, day, shift, index)

	// Build candidates (duplicates in the roster count towards Have but are matched once)
	seen := make(map[string]bool, len(rosterOnShift))
	candidates := make([]candidate, 0, len(rosterOnShift))
	for _, employeeID := range rosterOnShift {
		if seen[employeeID] {
			continue
		}
		seen[employeeID] = true
		candidates = append(candidates, newCandidate(employeeID, index.QualificationsOf(employeeID, day), index))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lessCandidate(candidates[i], candidates[j])
	})

	result := &CoverageResult{
		Date:                   day.Format(DateLayout),
		Shift:                  shift.String(),
		Have:                   len(rosterOnShift),
		MissingByQualification: []MissingQualification{},
		Assignments:            []Assignment{},
	}

	used := make(map[string]bool, len(candidates))
	missingIndex := make(map[string]int)

	for _, rl := range lines {
		result.Needed += rl.line.Count

		claimed := 0
		for _, c := range candidates {
			if claimed == rl.line.Count {
				break
			}
			if used[c.employeeID] || !c.holds(rl.line.QualificationID) {
				continue
			}
			used[c.employeeID] = true
			claimed++
			result.Assignments = append(result.Assignments, Assignment{
				EmployeeID:      c.employeeID,
				QualificationID: rl.line.QualificationID,
				ShortCode:       rl.entry.ShortCode,
			})
		}
		result.Matched += claimed

		shortfall := rl.line.Count - claimed
		if shortfall == 0 {
			continue
		}
		if i, ok := missingIndex[rl.entry.ShortCode]; ok {
			result.MissingByQualification[i].MissingCount += shortfall
			continue
		}
		missingIndex[rl.entry.ShortCode] = len(result.MissingByQualification)
		result.MissingByQualification = append(result.MissingByQualification, MissingQualification{
			ShortCode:        rl.entry.ShortCode,
			MissingCount:     shortfall,
			PriorityPosition: rl.entry.PriorityPosition,
		})
	}

	result.Surplus = max(result.Have-result.Needed, 0)
	result.IsSatisfied = len(result.MissingByQualification) == 0 && result.Have >= result.Needed

	return result, nil
}

// EvaluateRoster evaluates a shift using the employees the roster places on it
func EvaluateRoster(date time.Time, shift ShiftLabel, roster *Roster, demand []DemandLine, index *QualificationIndex) (*CoverageResult, error) {
	return Evaluate(date, shift, roster.OnShift(date, shift), demand, index)
}
