package coverage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overstaffedLateFixture has late two over its K demand and early missing one K
func overstaffedLateFixture() (*Roster, []DemandLine, *QualificationIndex) {
	roster := NewRoster(onDay(wednesday, map[string]DayStatus{
		"early-1": StatusEarly,
		"early-2": StatusEarly,
		"early-3": StatusEarly,
		"late-1":  StatusLate,
		"late-2":  StatusLate,
		"late-3":  StatusLate,
		"late-4":  StatusLate,
	}))

	index := indexOf(standardCatalog(),
		holds("early-1", "q-k"),
		holds("early-2", "q-l"),
		holds("early-3", "q-l"),
		holds("late-1", "q-k"),
		holds("late-2", "q-k"),
		holds("late-3", "q-k"),
		holds("late-4", "q-l"),
	)

	return roster, []DemandLine{weekdayK(2)}, index
}

func TestSimulateMove_SurplusKFillsUnderstaffedEarly(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	before, err := EvaluateRoster(day(wednesday), ShiftEarly, roster, demand, index)
	require.NoError(t, err)
	require.Equal(t, []MissingQualification{{ShortCode: "K", MissingCount: 1, PriorityPosition: 1}}, before.MissingByQualification)

	result, err := SimulateMove(MoveRequest{
		EmployeeID:  "late-1",
		Source:      ShiftLate,
		Destination: ShiftEarly,
		Date:        day(wednesday),
	}, roster, demand, index)
	require.NoError(t, err)

	assert.True(t, result.Feasible)
	assert.True(t, result.SourceCoverage.IsSatisfied)
	assert.True(t, result.DestinationCoverage.IsSatisfied)
	assert.Equal(t, 3, result.SourceCoverage.Have)
	assert.Equal(t, 4, result.DestinationCoverage.Have)
}

func TestSimulateMove_InfeasibleWhenSourceBreaks(t *testing.T) {
	roster := NewRoster(onDay(wednesday, map[string]DayStatus{
		"e1": StatusLate,
		"e2": StatusEarly,
	}))
	index := indexOf(standardCatalog(), holds("e1", "q-k"), holds("e2", "q-k"))

	result, err := SimulateMove(MoveRequest{EmployeeID: "e1", Source: ShiftLate, Destination: ShiftEarly, Date: day(wednesday)},
		roster, []DemandLine{weekdayK(1)}, index)
	require.NoError(t, err)

	assert.False(t, result.Feasible)
	assert.False(t, result.SourceCoverage.IsSatisfied)
	assert.True(t, result.DestinationCoverage.IsSatisfied)
}

func TestSimulateMove_MatchesAppliedMove(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	result, err := SimulateMove(MoveRequest{EmployeeID: "late-2", Source: ShiftLate, Destination: ShiftEarly, Date: day(wednesday)},
		roster, demand, index)
	require.NoError(t, err)

	// Apply the move physically and recompute both shifts independently
	entries := onDay(wednesday, map[string]DayStatus{
		"early-1": StatusEarly,
		"early-2": StatusEarly,
		"early-3": StatusEarly,
		"late-1":  StatusLate,
		"late-2":  StatusEarly,
		"late-3":  StatusLate,
		"late-4":  StatusLate,
	})
	moved := NewRoster(entries)

	source, err := EvaluateRoster(day(wednesday), ShiftLate, moved, demand, index)
	require.NoError(t, err)
	destination, err := EvaluateRoster(day(wednesday), ShiftEarly, moved, demand, index)
	require.NoError(t, err)

	assert.Equal(t, source, result.SourceCoverage)
	assert.Equal(t, destination, result.DestinationCoverage)
}

func TestSimulateMove_Preconditions(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	tests := []struct {
		name string
		req  MoveRequest
		want error
	}{
		{"same shift", MoveRequest{EmployeeID: "late-1", Source: ShiftLate, Destination: ShiftLate, Date: day(wednesday)}, ErrSameShift},
		{"not on source", MoveRequest{EmployeeID: "early-1", Source: ShiftLate, Destination: ShiftNight, Date: day(wednesday)}, ErrNotOnSourceShift},
		{"unknown employee", MoveRequest{EmployeeID: "nobody", Source: ShiftLate, Destination: ShiftEarly, Date: day(wednesday)}, ErrNotOnSourceShift},
		{"invalid shift", MoveRequest{EmployeeID: "late-1", Source: ShiftLate, Destination: ShiftLabel(0), Date: day(wednesday)}, ErrInvalidShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SimulateMove(tt.req, roster, demand, index)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)

			var rejected *MoveRejectedError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tt.req.EmployeeID, rejected.EmployeeID)
		})
	}
}

func TestSimulateMove_ExcludedEmployeeIsNotOnShift(t *testing.T) {
	entries := []RosterEntry{{EmployeeID: "e1", Date: day(wednesday), Status: StatusLate, Excluded: true}}
	roster := NewRoster(entries)

	_, err := SimulateMove(MoveRequest{EmployeeID: "e1", Source: ShiftLate, Destination: ShiftEarly, Date: day(wednesday)},
		roster, nil, indexOf(standardCatalog()))
	assert.ErrorIs(t, err, ErrNotOnSourceShift)
}

func TestScreenMoves_EveryCandidateOrderedByID(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	for _, limit := range []int{0, 1, 3} {
		moves, err := ScreenMoves(context.Background(), ShiftLate, ShiftEarly, day(wednesday), roster, demand, index, limit)
		require.NoError(t, err)
		require.Len(t, moves, 4)

		ids := []string{moves[0].EmployeeID, moves[1].EmployeeID, moves[2].EmployeeID, moves[3].EmployeeID}
		assert.Equal(t, []string{"late-1", "late-2", "late-3", "late-4"}, ids)

		// K holders fix early; the L holder leaves early short of K
		assert.True(t, moves[0].Result.Feasible)
		assert.True(t, moves[1].Result.Feasible)
		assert.True(t, moves[2].Result.Feasible)
		assert.False(t, moves[3].Result.Feasible)
	}
}

func TestScreenMoves_MatchesIndividualSimulation(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	moves, err := ScreenMoves(context.Background(), ShiftLate, ShiftEarly, day(wednesday), roster, demand, index, 2)
	require.NoError(t, err)

	for _, m := range moves {
		single, err := SimulateMove(MoveRequest{EmployeeID: m.EmployeeID, Source: ShiftLate, Destination: ShiftEarly, Date: day(wednesday)},
			roster, demand, index)
		require.NoError(t, err)
		assert.Equal(t, single, m.Result)
	}
}

func TestScreenMoves_SameShiftRejected(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	_, err := ScreenMoves(context.Background(), ShiftLate, ShiftLate, day(wednesday), roster, demand, index, 0)
	assert.ErrorIs(t, err, ErrSameShift)
}

func TestScreenMoves_CancelledContext(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScreenMoves(ctx, ShiftLate, ShiftEarly, day(wednesday), roster, demand, index, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScreenMoves_EmptySourceShift(t *testing.T) {
	roster, demand, index := overstaffedLateFixture()

	moves, err := ScreenMoves(context.Background(), ShiftNight, ShiftEarly, day(wednesday), roster, demand, index, 0)
	require.NoError(t, err)
	assert.Empty(t, moves)
}
