package coverage

import (
	"fmt"
	"time"
)

// WeeklyPattern selects which weekday/shift combinations a standing line covers
type WeeklyPattern int

const (
	// PatternNone applies on every day and shift
	PatternNone WeeklyPattern = iota
	PatternWeekdays
	PatternNoSunday
	PatternWeekdaysSaturdayEarly
	PatternSundayNightOnly
	PatternWeekdaysSaturdayEarlySundayNight
	PatternWeekends
)

var allShifts = []ShiftLabel{ShiftEarly, ShiftLate, ShiftNight}

// weeklyPatternTables maps each pattern to its weekday → allowed shifts table.
// Weekdays missing from a table are excluded.
var weeklyPatternTables = map[WeeklyPattern]map[time.Weekday][]ShiftLabel{
	PatternWeekdays: {
		time.Monday: allShifts, time.Tuesday: allShifts, time.Wednesday: allShifts,
		time.Thursday: allShifts, time.Friday: allShifts,
	},
	PatternNoSunday: {
		time.Monday: allShifts, time.Tuesday: allShifts, time.Wednesday: allShifts,
		time.Thursday: allShifts, time.Friday: allShifts, time.Saturday: allShifts,
	},
	PatternWeekdaysSaturdayEarly: {
		time.Monday: allShifts, time.Tuesday: allShifts, time.Wednesday: allShifts,
		time.Thursday: allShifts, time.Friday: allShifts,
		time.Saturday: {ShiftEarly},
	},
	PatternSundayNightOnly: {
		time.Monday: allShifts, time.Tuesday: allShifts, time.Wednesday: allShifts,
		time.Thursday: allShifts, time.Friday: allShifts, time.Saturday: allShifts,
		time.Sunday: {ShiftNight},
	},
	PatternWeekdaysSaturdayEarlySundayNight: {
		time.Monday: allShifts, time.Tuesday: allShifts, time.Wednesday: allShifts,
		time.Thursday: allShifts, time.Friday: allShifts,
		time.Saturday: {ShiftEarly},
		time.Sunday:   {ShiftNight},
	},
	PatternWeekends: {
		time.Saturday: allShifts, time.Sunday: allShifts,
	},
}

var weeklyPatternCodes = map[WeeklyPattern]string{
	PatternNone:                             "",
	PatternWeekdays:                         "weekdays",
	PatternNoSunday:                         "no_sunday",
	PatternWeekdaysSaturdayEarly:            "weekdays_sat_early",
	PatternSundayNightOnly:                  "sun_night_only",
	PatternWeekdaysSaturdayEarlySundayNight: "weekdays_sat_early_sun_night",
	PatternWeekends:                         "weekends",
}

func (p WeeklyPattern) String() string {
	if code, ok := weeklyPatternCodes[p]; ok {
		if code == "" {
			return "none"
		}
		return code
	}
	return fmt.Sprintf("WeeklyPattern(%d)", int(p))
}

// ParseWeeklyPattern converts a stored pattern code. An empty code means no pattern.
func ParseWeeklyPattern(code string) (WeeklyPattern, error) {
	for p, c := range weeklyPatternCodes {
		if c == code {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, code)
}

// Allows reports whether the pattern covers the shift on the weekday
func (p WeeklyPattern) Allows(weekday time.Weekday, shift ShiftLabel) bool {
	if p == PatternNone {
		return true
	}
	table, ok := weeklyPatternTables[p]
	if !ok {
		return false
	}
	for _, allowed := range table[weekday] {
		if allowed == shift {
			return true
		}
	}
	return false
}

// ActiveOn reports whether the date lies inside the line's validity bounds.
// A line with validFrom after validTo is never active.
func (l DemandLine) ActiveOn(date time.Time) bool {
	day := Day(date)
	if l.ValidFrom != nil && l.ValidTo != nil && Day(*l.ValidFrom).After(Day(*l.ValidTo)) {
		return false
	}
	if l.ValidFrom != nil && day.Before(Day(*l.ValidFrom)) {
		return false
	}
	if l.ValidTo != nil && day.After(Day(*l.ValidTo)) {
		return false
	}
	return true
}

// AppliesOn decides whether a demand line applies to the shift on the date.
//
// Rules, in order:
//   - the date must lie inside [ValidFrom, ValidTo]
//   - standing lines with a weekly pattern must allow the weekday/shift
//   - temporary lines bound the shift by their window on the first and last day
//   - a shift filter must match exactly
//
// The standing/temporary exclusivity of a day is applied by ResolveDemand, not here.
// An unknown shift label returns ErrInvalidShift.
func AppliesOn(line DemandLine, date time.Time, shift ShiftLabel) (bool, error) {
	if !shift.IsValid() {
		return false, fmt.Errorf("%w: %v", ErrInvalidShift, shift)
	}
	return appliesOn(line, date, shift), nil
}

func appliesOn(line DemandLine, date time.Time, shift ShiftLabel) bool {

	if !line.ActiveOn(date) {
		return false
	}

	day := Day(date)

	if line.IsStanding && line.WeeklyPattern != PatternNone {
		if !line.WeeklyPattern.Allows(day.Weekday(), shift) {
			return false
		}
	}

	if !line.IsStanding {
		isFirstDay := line.ValidFrom != nil && Day(*line.ValidFrom).Equal(day)
		isLastDay := line.ValidTo != nil && Day(*line.ValidTo).Equal(day)

		if isFirstDay && line.ShiftWindowStart != nil && shift < *line.ShiftWindowStart {
			return false
		}
		if isLastDay && line.ShiftWindowEnd != nil && shift > *line.ShiftWindowEnd {
			return false
		}
	}

	if line.ShiftFilter != nil && *line.ShiftFilter != shift {
		return false
	}

	return true
}

// HasTemporaryDemand reports whether any temporary line that counts towards demand
// is active on the date. When true, standing lines are suppressed for that whole day.
// Lines with a non-positive count or without a participating catalog entry do not count.
func HasTemporaryDemand(lines []DemandLine, date time.Time, index *QualificationIndex) bool {
	for _, line := range lines {
		if !line.IsStanding && line.ActiveOn(date) && countsTowardsDemand(line, index) {
			return true
		}
	}
	return false
}

func countsTowardsDemand(line DemandLine, index *QualificationIndex) bool {
	if line.Count <= 0 {
		return false
	}
	_, ok := index.Entry(line.QualificationID)
	return ok
}
