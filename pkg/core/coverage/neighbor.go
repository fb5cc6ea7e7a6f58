package coverage

import (
	"fmt"
	"time"
)

// Signal is the advisory colour given to a replacement candidate
type Signal int

const (
	SignalNone Signal = iota
	SignalGreen
	SignalYellow
	SignalAmber
	SignalRed
)

var signalNames = map[Signal]string{
	SignalNone:   "none",
	SignalGreen:  "green",
	SignalYellow: "yellow",
	SignalAmber:  "amber",
	SignalRed:    "red",
}

func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

func (s Signal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rank orders signals from most to least suitable: green, yellow, none, amber, red
func (s Signal) Rank() int {
	switch s {
	case SignalGreen:
		return 0
	case SignalYellow:
		return 1
	case SignalNone:
		return 2
	case SignalAmber:
		return 3
	case SignalRed:
		return 4
	}
	return 5
}

// NeighborPattern is an employee's schedule around the shift being filled
type NeighborPattern struct {
	TwoDaysBefore DayStatus
	DayBefore     DayStatus
	Target        ShiftLabel
	DayAfter      DayStatus
	TwoDaysAfter  DayStatus
}

// PatternFor reads the neighbourhood of date from the roster
func PatternFor(roster *Roster, employeeID string, date time.Time, target ShiftLabel) NeighborPattern {
	day := Day(date)
	return NeighborPattern{
		TwoDaysBefore: roster.StatusOf(employeeID, day.AddDate(0, 0, -2)),
		DayBefore:     roster.StatusOf(employeeID, day.AddDate(0, 0, -1)),
		Target:        target,
		DayAfter:      roster.StatusOf(employeeID, day.AddDate(0, 0, 1)),
		TwoDaysAfter:  roster.StatusOf(employeeID, day.AddDate(0, 0, 2)),
	}
}

// neighborRule matches a pattern when every non-nil slot contains the pattern's status
type neighborRule struct {
	twoDaysBefore []DayStatus
	dayBefore     []DayStatus
	dayAfter      []DayStatus
	twoDaysAfter  []DayStatus
	signal        Signal
}

func (r neighborRule) matches(p NeighborPattern) bool {
	return slotMatches(r.twoDaysBefore, p.TwoDaysBefore) &&
		slotMatches(r.dayBefore, p.DayBefore) &&
		slotMatches(r.dayAfter, p.DayAfter) &&
		slotMatches(r.twoDaysAfter, p.TwoDaysAfter)
}

func slotMatches(allowed []DayStatus, status DayStatus) bool {
	if allowed == nil {
		return true
	}
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

func is(statuses ...DayStatus) []DayStatus {
	return statuses
}

// neighborRules is the rest-period heuristic per target shift. First match wins.
// The table is domain data; the asymmetric sick-code handling between the
// branches is intentional.
var neighborRules = map[ShiftLabel][]neighborRule{
	ShiftEarly: {
		{dayBefore: is(StatusNight), signal: SignalRed},
		{dayBefore: is(StatusLate), signal: SignalAmber},
		{dayAfter: is(StatusNight), signal: SignalAmber},
		{twoDaysBefore: is(StatusOff), dayBefore: is(StatusOff), dayAfter: is(StatusEarly, StatusOff), signal: SignalGreen},
		{dayBefore: is(StatusEarly), dayAfter: is(StatusEarly, StatusOff), signal: SignalGreen},
		{dayBefore: is(StatusSickCert), signal: SignalYellow},
		{dayBefore: is(StatusSickNoCert), signal: SignalAmber},
		{dayBefore: is(StatusVacation), signal: SignalYellow},
		{dayBefore: is(StatusOff), signal: SignalYellow},
	},
	ShiftLate: {
		{dayAfter: is(StatusEarly), signal: SignalAmber},
		{dayBefore: is(StatusNight), signal: SignalAmber},
		{dayBefore: is(StatusLate), dayAfter: is(StatusLate, StatusOff), signal: SignalGreen},
		{dayBefore: is(StatusOff), dayAfter: is(StatusOff), signal: SignalGreen},
		{dayBefore: is(StatusSickCert, StatusSickNoCert), signal: SignalYellow},
		{dayAfter: is(StatusSickCert, StatusSickNoCert), signal: SignalYellow},
		{dayBefore: is(StatusEarly), signal: SignalYellow},
	},
	ShiftNight: {
		{dayAfter: is(StatusEarly), signal: SignalRed},
		{dayAfter: is(StatusLate), signal: SignalAmber},
		{dayBefore: is(StatusSickNoCert), signal: SignalRed},
		{dayBefore: is(StatusNight), dayAfter: is(StatusNight, StatusOff), signal: SignalGreen},
		{dayBefore: is(StatusEarly), signal: SignalAmber},
		{dayBefore: is(StatusLate), signal: SignalYellow},
		{dayAfter: is(StatusOff), twoDaysAfter: is(StatusOff), signal: SignalGreen},
	},
}

// Classify scores how well the pattern suits taking the target shift.
// Patterns no rule covers, and unknown targets, yield SignalNone.
func Classify(p NeighborPattern) Signal {
	for _, rule := range neighborRules[p.Target] {
		if rule.matches(p) {
			return rule.signal
		}
	}
	return SignalNone
}
