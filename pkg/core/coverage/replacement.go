package coverage

import (
	"fmt"
	"sort"
	"time"
)

// Replacement is a free employee considered for filling a shift
type Replacement struct {
	EmployeeID string          `json:"employeeId"`
	Signal     Signal          `json:"signal"`
	Pattern    NeighborPattern `json:"-"`

	// FillsMissing lists the missing short codes the employee could cover
	FillsMissing []string `json:"fillsMissing"`

	// Satisfies is true when adding the employee makes the shift satisfied
	Satisfies bool `json:"satisfies"`

	Rank int `json:"rank"`
}

// ReplacementOptions tunes RankReplacements
type ReplacementOptions struct {
	// MaxResults truncates the ranked list (0 = no limit)
	MaxResults int

	// ExcludeRed drops candidates whose neighbour signal is red
	ExcludeRed bool
}

// DefaultReplacementOptions returns options that keep every candidate
func DefaultReplacementOptions() *ReplacementOptions {
	return &ReplacementOptions{}
}

// RankReplacements orders the free employees of pool as candidates for the shift.
//
// An employee is free when the roster has them off and not excluded on the date.
// Candidates are ordered by:
//  1. neighbour signal rank (green, yellow, none, amber, red)
//  2. whether adding them satisfies the shift
//  3. number of missing short codes they can cover, descending
//  4. employee ID
func RankReplacements(date time.Time, shift ShiftLabel, pool []string, roster *Roster, demand []DemandLine, index *QualificationIndex, options *ReplacementOptions) ([]Replacement, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShift, shift)
	}
	if options == nil {
		options = DefaultReplacementOptions()
	}

	day := Day(date)
	onShift := roster.OnShift(day, shift)

	current, err := Evaluate(day, shift, onShift, demand, index)
	if err != nil {
		return nil, err
	}

	missingCodes := make(map[string]bool, len(current.MissingByQualification))
	for _, m := range current.MissingByQualification {
		missingCodes[m.ShortCode] = true
	}

	seen := make(map[string]bool, len(pool))
	candidates := make([]Replacement, 0, len(pool))

	for _, employeeID := range pool {
		if seen[employeeID] {
			continue
		}
		seen[employeeID] = true

		if roster.IsExcluded(employeeID, day) || roster.StatusOf(employeeID, day) != StatusOff {
			continue
		}

		pattern := PatternFor(roster, employeeID, day, shift)
		signal := Classify(pattern)
		if options.ExcludeRed && signal == SignalRed {
			continue
		}

		after, err := Evaluate(day, shift, with(onShift, employeeID), demand, index)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, Replacement{
			EmployeeID:   employeeID,
			Signal:       signal,
			Pattern:      pattern,
			FillsMissing: fillsMissing(employeeID, day, index, missingCodes),
			Satisfies:    after.IsSatisfied,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return lessReplacement(candidates[i], candidates[j])
	})

	if options.MaxResults > 0 && len(candidates) > options.MaxResults {
		candidates = candidates[:options.MaxResults]
	}

	for i := range candidates {
		candidates[i].Rank = i + 1
	}

	return candidates, nil
}

func fillsMissing(employeeID string, day time.Time, index *QualificationIndex, missingCodes map[string]bool) []string {
	codes := make([]string, 0)
	if len(missingCodes) == 0 {
		return codes
	}
	added := make(map[string]bool)
	for _, qualificationID := range index.QualificationsOf(employeeID, day) {
		entry, ok := index.Entry(qualificationID)
		if !ok || !missingCodes[entry.ShortCode] || added[entry.ShortCode] {
			continue
		}
		added[entry.ShortCode] = true
		codes = append(codes, entry.ShortCode)
	}
	return codes
}

func lessReplacement(a, b Replacement) bool {
	if a.Signal.Rank() != b.Signal.Rank() {
		return a.Signal.Rank() < b.Signal.Rank()
	}
	if a.Satisfies != b.Satisfies {
		return a.Satisfies
	}
	if len(a.FillsMissing) != len(b.FillsMissing) {
		return len(a.FillsMissing) > len(b.FillsMissing)
	}
	return a.EmployeeID < b.EmployeeID
}
