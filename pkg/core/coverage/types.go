package coverage

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for every date string crossing the engine boundary
const DateLayout = "2006-01-02"

// ShiftLabel identifies one of the working shifts of a day.
// Labels are totally ordered: Early < Late < Night.
type ShiftLabel int

const (
	ShiftEarly ShiftLabel = iota + 1
	ShiftLate
	ShiftNight
)

// Shifts lists every working shift in order
var Shifts = []ShiftLabel{ShiftEarly, ShiftLate, ShiftNight}

func (s ShiftLabel) String() string {
	switch s {
	case ShiftEarly:
		return "early"
	case ShiftLate:
		return "late"
	case ShiftNight:
		return "night"
	}
	return fmt.Sprintf("ShiftLabel(%d)", int(s))
}

// IsValid reports whether s is one of the known shifts
func (s ShiftLabel) IsValid() bool {
	return s >= ShiftEarly && s <= ShiftNight
}

// ParseShiftLabel converts a stored label into a ShiftLabel
func ParseShiftLabel(label string) (ShiftLabel, error) {
	switch label {
	case "early":
		return ShiftEarly, nil
	case "late":
		return ShiftLate, nil
	case "night":
		return ShiftNight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShift, label)
}

// CompareShifts orders two shift labels (-1, 0, 1).
// Unknown labels are a caller error.
func CompareShifts(a, b ShiftLabel) (int, error) {
	if !a.IsValid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidShift, a)
	}
	if !b.IsValid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidShift, b)
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

// DayStatus is what an employee is doing on a given day
type DayStatus int

const (
	StatusOff DayStatus = iota
	StatusEarly
	StatusLate
	StatusNight
	StatusSickCert   // sick with certificate ("K")
	StatusSickNoCert // sick without certificate ("KO")
	StatusVacation
)

var dayStatusNames = map[DayStatus]string{
	StatusOff:        "off",
	StatusEarly:      "early",
	StatusLate:       "late",
	StatusNight:      "night",
	StatusSickCert:   "sick-cert",
	StatusSickNoCert: "sick-nocert",
	StatusVacation:   "vacation",
}

func (d DayStatus) String() string {
	if name, ok := dayStatusNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DayStatus(%d)", int(d))
}

// ParseDayStatus converts a stored status into a DayStatus.
// An empty string reads as off.
func ParseDayStatus(status string) (DayStatus, error) {
	if status == "" {
		return StatusOff, nil
	}
	for d, name := range dayStatusNames {
		if name == status {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDayStatus, status)
}

// Shift returns the working shift for the status, or false when the employee is not on duty
func (d DayStatus) Shift() (ShiftLabel, bool) {
	switch d {
	case StatusEarly:
		return ShiftEarly, true
	case StatusLate:
		return ShiftLate, true
	case StatusNight:
		return ShiftNight, true
	}
	return 0, false
}

// StatusFor returns the on-duty status for a shift
func StatusFor(shift ShiftLabel) DayStatus {
	switch shift {
	case ShiftEarly:
		return StatusEarly
	case ShiftLate:
		return StatusLate
	case ShiftNight:
		return StatusNight
	}
	return StatusOff
}

// DemandLine is one staffing requirement
type DemandLine struct {
	ID              string
	QualificationID string

	// Count is the required headcount
	Count int

	// ValidFrom and ValidTo are inclusive day bounds; nil means unbounded
	ValidFrom *time.Time
	ValidTo   *time.Time

	// IsStanding marks recurring baseline demand; false means a temporary override
	IsStanding bool

	// ShiftFilter restricts the line to one shift (nil = any shift)
	ShiftFilter *ShiftLabel

	// ShiftWindowStart and ShiftWindowEnd bound the shifts on the first and last
	// day of a temporary line
	ShiftWindowStart *ShiftLabel
	ShiftWindowEnd   *ShiftLabel

	// WeeklyPattern restricts standing lines to weekday/shift combinations
	WeeklyPattern WeeklyPattern
}

// QualificationAssignment records that an employee holds a qualification
type QualificationAssignment struct {
	EmployeeID      string
	QualificationID string
	ValidFrom       *time.Time
	ValidTo         *time.Time
}

// CatalogEntry describes a qualification
type CatalogEntry struct {
	ID        string
	ShortCode string

	// PriorityPosition ranks qualifications; lower is scarcer/more valuable
	PriorityPosition int

	OperationallyRelevant bool
	Active                bool
}

// Participates reports whether the qualification counts in coverage math
func (c CatalogEntry) Participates() bool {
	return c.OperationallyRelevant && c.Active
}

// RosterEntry is the resolved status of one employee on one day
type RosterEntry struct {
	EmployeeID string
	Date       time.Time
	Status     DayStatus

	// Excluded employees are treated as off regardless of schedule
	Excluded bool
}

// MissingQualification is one shortfall line of a coverage result
type MissingQualification struct {
	ShortCode        string `json:"shortCode"`
	MissingCount     int    `json:"missingCount"`
	PriorityPosition int    `json:"priorityPosition"`
}

// Assignment records which employee was claimed for which qualification
type Assignment struct {
	EmployeeID      string `json:"employeeId"`
	QualificationID string `json:"qualificationId"`
	ShortCode       string `json:"shortCode"`
}

// CoverageResult is the coverage of one shift on one day
type CoverageResult struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`

	// Needed is the sum of applicable demand counts
	Needed int `json:"needed"`

	// Have is the number of employees on the shift
	Have int `json:"have"`

	// Matched is the demand headcount actually satisfied
	Matched int `json:"matched"`

	MissingByQualification []MissingQualification `json:"missingByQualification"`

	Surplus     int  `json:"surplus"`
	IsSatisfied bool `json:"isSatisfied"`

	Assignments []Assignment `json:"assignments"`
}

// MissingCount returns the total missing headcount
func (r *CoverageResult) MissingCount() int {
	total := 0
	for _, m := range r.MissingByQualification {
		total += m.MissingCount
	}
	return total
}

// SwapResult is the outcome of a simulated move
type SwapResult struct {
	Feasible            bool            `json:"feasible"`
	SourceCoverage      *CoverageResult `json:"sourceCoverage"`
	DestinationCoverage *CoverageResult `json:"destinationCoverage"`
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
