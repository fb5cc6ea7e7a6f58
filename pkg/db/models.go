package db

// Dates are stored as YYYY-MM-DD strings; an empty date is unbounded.
// Shift and status labels use the engine's lower-case names.

// DemandLine represents a staffing requirement record
type DemandLine struct {
	ID               string `ssql_header:"id" ssql_type:"text" yaml:"id"`
	UnitID           string `ssql_header:"unit_id" ssql_type:"text" yaml:"unitId"`
	QualificationID  string `ssql_header:"qualification_id" ssql_type:"text" yaml:"qualificationId"`
	Count            int    `ssql_header:"count" ssql_type:"int" yaml:"count"`
	ValidFrom        string `ssql_header:"valid_from" ssql_type:"date" yaml:"validFrom,omitempty"`
	ValidTo          string `ssql_header:"valid_to" ssql_type:"date" yaml:"validTo,omitempty"`
	IsStanding       bool   `ssql_header:"is_standing" ssql_type:"bool" yaml:"isStanding"`
	ShiftFilter      string `ssql_header:"shift_filter" ssql_type:"text" yaml:"shiftFilter,omitempty"`
	ShiftWindowStart string `ssql_header:"shift_window_start" ssql_type:"text" yaml:"shiftWindowStart,omitempty"`
	ShiftWindowEnd   string `ssql_header:"shift_window_end" ssql_type:"text" yaml:"shiftWindowEnd,omitempty"`
	WeeklyPattern    string `ssql_header:"weekly_pattern" ssql_type:"text" yaml:"weeklyPattern,omitempty"`
}

// Qualification represents a qualification catalog record
type Qualification struct {
	ID                    string `ssql_header:"id" ssql_type:"text" yaml:"id"`
	ShortCode             string `ssql_header:"short_code" ssql_type:"text" yaml:"shortCode"`
	PriorityPosition      int    `ssql_header:"priority_position" ssql_type:"int" yaml:"priorityPosition"`
	OperationallyRelevant bool   `ssql_header:"operationally_relevant" ssql_type:"bool" yaml:"operationallyRelevant"`
	Active                bool   `ssql_header:"active" ssql_type:"bool" yaml:"active"`
}

// QualificationAssignment represents an employee qualification record
type QualificationAssignment struct {
	EmployeeID      string `ssql_header:"employee_id" ssql_type:"text" yaml:"employeeId"`
	QualificationID string `ssql_header:"qualification_id" ssql_type:"text" yaml:"qualificationId"`
	ValidFrom       string `ssql_header:"valid_from" ssql_type:"date" yaml:"validFrom,omitempty"`
	ValidTo         string `ssql_header:"valid_to" ssql_type:"date" yaml:"validTo,omitempty"`
}

// Employee represents an employee record
type Employee struct {
	ID        string `ssql_header:"id" ssql_type:"text" yaml:"id"`
	UnitID    string `ssql_header:"unit_id" ssql_type:"text" yaml:"unitId"`
	FirstName string `ssql_header:"first_name" ssql_type:"text" yaml:"firstName"`
	LastName  string `ssql_header:"last_name" ssql_type:"text" yaml:"lastName"`
	Email     string `ssql_header:"email" ssql_type:"text" yaml:"email,omitempty"`
}

// RosterEntry represents one employee's status on one day
type RosterEntry struct {
	UnitID     string `ssql_header:"unit_id" ssql_type:"text" yaml:"unitId"`
	EmployeeID string `ssql_header:"employee_id" ssql_type:"text" yaml:"employeeId"`
	Date       string `ssql_header:"date" ssql_type:"date" yaml:"date"`
	Status     string `ssql_header:"status" ssql_type:"text" yaml:"status"`
	Excluded   bool   `ssql_header:"excluded" ssql_type:"bool" yaml:"excluded,omitempty"`
}

// Snapshot bundles every record kind, as imported and exported in bulk
type Snapshot struct {
	DemandLines              []DemandLine              `yaml:"demandLines"`
	Qualifications           []Qualification           `yaml:"qualifications"`
	QualificationAssignments []QualificationAssignment `yaml:"qualificationAssignments"`
	Employees                []Employee                `yaml:"employees"`
	RosterEntries            []RosterEntry             `yaml:"rosterEntries"`
}

// Models lists one value of every record kind, in table order
func Models() []interface{} {
	return []interface{}{
		DemandLine{},
		Qualification{},
		QualificationAssignment{},
		Employee{},
		RosterEntry{},
	}
}
