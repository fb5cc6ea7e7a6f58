package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/snapshotfile"
)

func TestImportSnapshot(t *testing.T) {
	target := &mockStore{}
	snapshot := wardSnapshot()

	summary, err := ImportSnapshot(context.Background(), target, testLogger(), &snapshot)
	require.NoError(t, err)

	assert.Equal(t, &ImportSummary{
		DemandLines:              3,
		Qualifications:           2,
		QualificationAssignments: 5,
		Employees:                6,
		RosterEntries:            5,
	}, summary)
	assert.Same(t, &snapshot, target.imported)
}

func TestImportSnapshot_InvalidRecordNotImported(t *testing.T) {
	target := &mockStore{}
	snapshot := wardSnapshot()
	snapshot.DemandLines[0].WeeklyPattern = "every_other_day"

	_, err := ImportSnapshot(context.Background(), target, testLogger(), &snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot")
	assert.Nil(t, target.imported)
}

func TestImportSnapshot_TargetError(t *testing.T) {
	target := &mockStore{err: errors.New("disk full")}
	snapshot := wardSnapshot()

	_, err := ImportSnapshot(context.Background(), target, testLogger(), &snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestImportSnapshot_DuplicateKeysNotImported(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *db.Snapshot)
		message string
	}{
		{
			name: "demand line id",
			mutate: func(s *db.Snapshot) {
				s.DemandLines = append(s.DemandLines, s.DemandLines[0])
			},
			message: `duplicate demand line id "line-early"`,
		},
		{
			name: "assignment pair",
			mutate: func(s *db.Snapshot) {
				s.QualificationAssignments = append(s.QualificationAssignments,
					db.QualificationAssignment{EmployeeID: "emp-1", QualificationID: "q-k", ValidFrom: "2024-01-01"})
			},
			message: `duplicate qualification assignment "emp-1"/"q-k"`,
		},
		{
			name: "roster entry",
			mutate: func(s *db.Snapshot) {
				s.RosterEntries = append(s.RosterEntries,
					db.RosterEntry{UnitID: testUnit, EmployeeID: "emp-1", Date: wednesday, Status: "late"})
			},
			message: "duplicate roster entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &mockStore{}
			snapshot := wardSnapshot()
			tt.mutate(&snapshot)

			_, err := ImportSnapshot(context.Background(), target, testLogger(), &snapshot)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Nil(t, target.imported)
		})
	}
}

func TestImportSnapshot_ReimportKeepsDemand(t *testing.T) {
	ctx := context.Background()
	store := snapshotfile.NewStore(filepath.Join(t.TempDir(), "snapshot.yaml"))

	for i := 0; i < 2; i++ {
		snapshot := wardSnapshot()
		_, err := ImportSnapshot(ctx, store, testLogger(), &snapshot)
		require.NoError(t, err)
	}

	result, err := EvaluateCoverage(ctx, store, testConfig(), testLogger(), testDay(wednesday), coverage.ShiftLate)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Needed)
	assert.Equal(t, 1, result.Have)

	result, err = EvaluateCoverage(ctx, store, testConfig(), testLogger(), testDay(wednesday), coverage.ShiftEarly)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Needed)
	assert.Equal(t, 3, result.Have)
	assert.True(t, result.IsSatisfied)
}
