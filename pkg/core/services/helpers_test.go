package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/db"
)

const (
	testUnit  = "ward-3"
	wednesday = "2025-01-15"
)

// mockStore serves a fixed snapshot, filtering like the real stores do
type mockStore struct {
	snapshot db.Snapshot
	err      error

	imported *db.Snapshot
}

func (m *mockStore) GetDemandLines(ctx context.Context, unitID string) ([]db.DemandLine, error) {
	if m.err != nil {
		return nil, m.err
	}
	var lines []db.DemandLine
	for _, l := range m.snapshot.DemandLines {
		if l.UnitID == unitID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (m *mockStore) GetQualificationCatalog(ctx context.Context) ([]db.Qualification, error) {
	return m.snapshot.Qualifications, m.err
}

func (m *mockStore) GetQualificationAssignments(ctx context.Context) ([]db.QualificationAssignment, error) {
	return m.snapshot.QualificationAssignments, m.err
}

func (m *mockStore) GetEmployees(ctx context.Context, unitID string) ([]db.Employee, error) {
	var employees []db.Employee
	for _, e := range m.snapshot.Employees {
		if e.UnitID == unitID {
			employees = append(employees, e)
		}
	}
	return employees, m.err
}

func (m *mockStore) GetRosterEntries(ctx context.Context, unitID, from, to string) ([]db.RosterEntry, error) {
	var entries []db.RosterEntry
	for _, e := range m.snapshot.RosterEntries {
		if e.UnitID == unitID && e.Date >= from && e.Date <= to {
			entries = append(entries, e)
		}
	}
	return entries, m.err
}

func (m *mockStore) ImportSnapshot(ctx context.Context, snapshot *db.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.imported = snapshot
	return nil
}

// mockMailer records sent emails
type mockMailer struct {
	sent   []string
	failOn string
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if to == m.failOn {
		return errors.New("quota exceeded")
	}
	m.sent = append(m.sent, to)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Store:        config.StoreFile,
		SnapshotPath: "snapshot.yaml",
		UnitID:       testUnit,
		ReportRRule:  "FREQ=DAILY;COUNT=3",
	}
}

func testDay(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// wardSnapshot is a unit on Wednesday 2025-01-15:
//
//	early needs 2x K; emp-1 (K), emp-2 (L), emp-3 (K) are on it
//	late needs 1x L; only emp-4 (K) is on it
//	night has no demand
//	emp-5 (L) is off all week; emp-6 worked the night before
func wardSnapshot() db.Snapshot {
	return db.Snapshot{
		Qualifications: []db.Qualification{
			{ID: "q-k", ShortCode: "K", PriorityPosition: 1, OperationallyRelevant: true, Active: true},
			{ID: "q-l", ShortCode: "L", PriorityPosition: 2, OperationallyRelevant: true, Active: true},
		},
		QualificationAssignments: []db.QualificationAssignment{
			{EmployeeID: "emp-1", QualificationID: "q-k"},
			{EmployeeID: "emp-2", QualificationID: "q-l"},
			{EmployeeID: "emp-3", QualificationID: "q-k"},
			{EmployeeID: "emp-4", QualificationID: "q-k"},
			{EmployeeID: "emp-5", QualificationID: "q-l"},
		},
		DemandLines: []db.DemandLine{
			{ID: "line-early", UnitID: testUnit, QualificationID: "q-k", Count: 2, IsStanding: true, ShiftFilter: "early"},
			{ID: "line-late", UnitID: testUnit, QualificationID: "q-l", Count: 1, IsStanding: true, ShiftFilter: "late"},
			{ID: "line-other-unit", UnitID: "ward-4", QualificationID: "q-k", Count: 5, IsStanding: true},
		},
		Employees: []db.Employee{
			{ID: "emp-1", UnitID: testUnit, FirstName: "Ada", LastName: "Lovelace"},
			{ID: "emp-2", UnitID: testUnit, FirstName: "Sam", LastName: "Okafor"},
			{ID: "emp-3", UnitID: testUnit, FirstName: "Sam", LastName: "Berg"},
			{ID: "emp-4", UnitID: testUnit, FirstName: "Grace", LastName: "Hopper"},
			{ID: "emp-5", UnitID: testUnit, FirstName: "Alan", LastName: "Turing"},
			{ID: "emp-6", UnitID: testUnit, FirstName: "Edsger", LastName: "Dijkstra"},
		},
		RosterEntries: []db.RosterEntry{
			{UnitID: testUnit, EmployeeID: "emp-1", Date: wednesday, Status: "early"},
			{UnitID: testUnit, EmployeeID: "emp-2", Date: wednesday, Status: "early"},
			{UnitID: testUnit, EmployeeID: "emp-3", Date: wednesday, Status: "early"},
			{UnitID: testUnit, EmployeeID: "emp-4", Date: wednesday, Status: "late"},
			{UnitID: testUnit, EmployeeID: "emp-6", Date: "2025-01-14", Status: "night"},
		},
	}
}

func newWardStore() *mockStore {
	return &mockStore{snapshot: wardSnapshot()}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
