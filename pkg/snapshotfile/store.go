// Package snapshotfile keeps snapshots in a single YAML document on disk.
package snapshotfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-cockpit/pkg/db"
)

var _ db.Database = (*Store)(nil)

// Store reads and writes a YAML snapshot file.
// The file is read on every call so edits are picked up without a restart.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot file. A missing file is an empty snapshot.
func (s *Store) Load() (*db.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*db.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &db.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot db.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return &snapshot, nil
}

// GetDemandLines retrieves the demand lines of a unit
func (s *Store) GetDemandLines(ctx context.Context, unitID string) ([]db.DemandLine, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}

	var lines []db.DemandLine
	for _, l := range snapshot.DemandLines {
		if l.UnitID == unitID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// GetQualificationCatalog retrieves every qualification
func (s *Store) GetQualificationCatalog(ctx context.Context) ([]db.Qualification, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}
	return snapshot.Qualifications, nil
}

// GetQualificationAssignments retrieves every qualification assignment
func (s *Store) GetQualificationAssignments(ctx context.Context) ([]db.QualificationAssignment, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}
	return snapshot.QualificationAssignments, nil
}

// GetEmployees retrieves the employees of a unit
func (s *Store) GetEmployees(ctx context.Context, unitID string) ([]db.Employee, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}

	var employees []db.Employee
	for _, e := range snapshot.Employees {
		if e.UnitID == unitID {
			employees = append(employees, e)
		}
	}
	return employees, nil
}

// GetRosterEntries retrieves a unit's roster entries dated from..to inclusive
func (s *Store) GetRosterEntries(ctx context.Context, unitID, from, to string) ([]db.RosterEntry, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}

	var entries []db.RosterEntry
	for _, e := range snapshot.RosterEntries {
		if e.UnitID == unitID && e.Date >= from && e.Date <= to {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].EmployeeID < entries[j].EmployeeID
	})
	return entries, nil
}

// ImportSnapshot upserts the records of snapshot into the file by natural key.
// Importing the same snapshot twice leaves the file unchanged.
func (s *Store) ImportSnapshot(ctx context.Context, snapshot *db.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}

	current.Merge(snapshot)

	data, err := yaml.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
