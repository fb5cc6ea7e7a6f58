package snapshotfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cockpit/pkg/db"
)

const sampleSnapshot = `
qualifications:
  - id: q-k
    shortCode: K
    priorityPosition: 1
    operationallyRelevant: true
    active: true
employees:
  - id: emp-1
    unitId: ward-3
    firstName: Ada
    lastName: Lovelace
  - id: emp-2
    unitId: ward-4
    firstName: Grace
    lastName: Hopper
qualificationAssignments:
  - employeeId: emp-1
    qualificationId: q-k
    validFrom: "2024-01-01"
demandLines:
  - id: line-1
    unitId: ward-3
    qualificationId: q-k
    count: 2
    isStanding: true
    weeklyPattern: weekdays
rosterEntries:
  - unitId: ward-3
    employeeId: emp-1
    date: "2025-01-16"
    status: late
  - unitId: ward-3
    employeeId: emp-1
    date: "2025-01-15"
    status: early
  - unitId: ward-3
    employeeId: emp-1
    date: "2025-02-01"
    status: vacation
`

func writeSnapshot(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewStore(path)
}

func TestStore_ReadsRecords(t *testing.T) {
	ctx := context.Background()
	store := writeSnapshot(t, sampleSnapshot)

	lines, err := store.GetDemandLines(ctx, "ward-3")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, db.DemandLine{
		ID: "line-1", UnitID: "ward-3", QualificationID: "q-k", Count: 2, IsStanding: true, WeeklyPattern: "weekdays",
	}, lines[0])

	catalog, err := store.GetQualificationCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.True(t, catalog[0].Active)

	assignments, err := store.GetQualificationAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "2024-01-01", assignments[0].ValidFrom)

	employees, err := store.GetEmployees(ctx, "ward-4")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Grace", employees[0].FirstName)
}

func TestStore_GetRosterEntries_RangeAndOrder(t *testing.T) {
	store := writeSnapshot(t, sampleSnapshot)

	entries, err := store.GetRosterEntries(context.Background(), "ward-3", "2025-01-01", "2025-01-31")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "2025-01-15", entries[0].Date)
	assert.Equal(t, "2025-01-16", entries[1].Date)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.yaml"))

	lines, err := store.GetDemandLines(context.Background(), "ward-3")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_InvalidYAML(t *testing.T) {
	store := writeSnapshot(t, "demandLines: [unclosed")

	_, err := store.GetQualificationCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse snapshot file")
}

func TestStore_ImportSnapshotUpsertsByNaturalKey(t *testing.T) {
	ctx := context.Background()
	store := writeSnapshot(t, sampleSnapshot)

	err := store.ImportSnapshot(ctx, &db.Snapshot{
		Employees: []db.Employee{{ID: "emp-3", UnitID: "ward-3", FirstName: "Alan", LastName: "Turing"}},
		DemandLines: []db.DemandLine{
			{ID: "line-1", UnitID: "ward-3", QualificationID: "q-k", Count: 1, IsStanding: true, WeeklyPattern: "weekdays"},
		},
		RosterEntries: []db.RosterEntry{
			{UnitID: "ward-3", EmployeeID: "emp-1", Date: "2025-01-15", Status: "off"},
			{UnitID: "ward-3", EmployeeID: "emp-3", Date: "2025-01-15", Status: "night"},
		},
	})
	require.NoError(t, err)

	employees, err := store.GetEmployees(ctx, "ward-3")
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	lines, err := store.GetDemandLines(ctx, "ward-3")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Count)

	entries, err := store.GetRosterEntries(ctx, "ward-3", "2025-01-15", "2025-01-15")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "emp-1", entries[0].EmployeeID)
	assert.Equal(t, "off", entries[0].Status)
	assert.Equal(t, "emp-3", entries[1].EmployeeID)
}

func TestStore_ImportSnapshotTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	source := writeSnapshot(t, sampleSnapshot)
	snapshot, err := source.Load()
	require.NoError(t, err)

	store := NewStore(filepath.Join(t.TempDir(), "target.yaml"))
	require.NoError(t, store.ImportSnapshot(ctx, snapshot))
	once, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	require.NoError(t, store.ImportSnapshot(ctx, snapshot))
	twice, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, snapshot, reloaded)
}
