package coverage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayK(count int) DemandLine {
	return DemandLine{ID: "d-k", QualificationID: "q-k", Count: count, IsStanding: true, WeeklyPattern: PatternWeekdays}
}

func TestEvaluate_TwoOfThreeHoldK(t *testing.T) {
	index := indexOf(standardCatalog(),
		holds("e1", "q-k"),
		holds("e2", "q-k"),
		holds("e3", "q-l"),
	)

	result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1", "e2", "e3"}, []DemandLine{weekdayK(2)}, index)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Needed)
	assert.Equal(t, 3, result.Have)
	assert.Empty(t, result.MissingByQualification)
	assert.Equal(t, 1, result.Surplus)
	assert.True(t, result.IsSatisfied)
	assert.Equal(t, 2, result.Matched)
}

func TestEvaluate_OneOfThreeHoldsK(t *testing.T) {
	index := indexOf(standardCatalog(),
		holds("e1", "q-k"),
		holds("e2", "q-l"),
		holds("e3", "q-l"),
	)

	result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1", "e2", "e3"}, []DemandLine{weekdayK(2)}, index)
	require.NoError(t, err)

	assert.Equal(t, []MissingQualification{{ShortCode: "K", MissingCount: 1, PriorityPosition: 1}}, result.MissingByQualification)
	assert.False(t, result.IsSatisfied)
	assert.Equal(t, 1, result.Surplus) // have 3, needed 2
}

func TestEvaluate_SundayPatternExcludesEarly(t *testing.T) {
	sunday := day("2025-01-19")
	index := indexOf(standardCatalog(), holds("e1", "q-k"))
	demand := []DemandLine{
		{ID: "d1", QualificationID: "q-k", Count: 5, IsStanding: true, WeeklyPattern: PatternSundayNightOnly},
	}

	early, err := Evaluate(sunday, ShiftEarly, []string{"e1"}, demand, index)
	require.NoError(t, err)
	assert.Equal(t, 0, early.Needed)
	assert.True(t, early.IsSatisfied)

	night, err := Evaluate(sunday, ShiftNight, []string{"e1"}, demand, index)
	require.NoError(t, err)
	assert.Equal(t, 5, night.Needed)
}

func TestEvaluate_SpecialistSpentBeforeGeneralist(t *testing.T) {
	// generalist holds K and L, specialist only L. Line K first (priority 1)
	// must take the generalist so the specialist can fill L.
	index := indexOf(standardCatalog(),
		holds("a-generalist", "q-k", "q-l"),
		holds("b-specialist", "q-l"),
	)
	demand := []DemandLine{
		{ID: "d-l", QualificationID: "q-l", Count: 1, IsStanding: true},
		{ID: "d-k", QualificationID: "q-k", Count: 1, IsStanding: true},
	}

	result, err := Evaluate(day(wednesday), ShiftLate, []string{"a-generalist", "b-specialist"}, demand, index)
	require.NoError(t, err)

	assert.True(t, result.IsSatisfied)
	assert.Equal(t, []Assignment{
		{EmployeeID: "a-generalist", QualificationID: "q-k", ShortCode: "K"},
		{EmployeeID: "b-specialist", QualificationID: "q-l", ShortCode: "L"},
	}, result.Assignments)
}

func TestEvaluate_CandidatesUsedOnce(t *testing.T) {
	index := indexOf(standardCatalog(), holds("e1", "q-k", "q-l"))
	demand := []DemandLine{
		{ID: "d-k", QualificationID: "q-k", Count: 1, IsStanding: true},
		{ID: "d-l", QualificationID: "q-l", Count: 1, IsStanding: true},
	}

	result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1"}, demand, index)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, []MissingQualification{{ShortCode: "L", MissingCount: 1, PriorityPosition: 2}}, result.MissingByQualification)
}

func TestEvaluate_StandingSuppressedByTemporary(t *testing.T) {
	index := indexOf(standardCatalog(), holds("e1", "q-k"))
	demand := []DemandLine{
		weekdayK(3),
		// Temporary line active today but only on nights
		{ID: "t-l", QualificationID: "q-l", Count: 1, IsStanding: false,
			ValidFrom: dayPtr(wednesday), ValidTo: dayPtr(wednesday), ShiftFilter: shiftPtr(ShiftNight)},
	}

	early, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1"}, demand, index)
	require.NoError(t, err)
	assert.Equal(t, 0, early.Needed, "standing demand must not count on a day with temporary demand")

	night, err := Evaluate(day(wednesday), ShiftNight, []string{"e1"}, demand, index)
	require.NoError(t, err)
	assert.Equal(t, 1, night.Needed)

	// The next day has no temporary demand so standing applies again
	thursday, err := Evaluate(day("2025-01-16"), ShiftEarly, []string{"e1"}, demand, index)
	require.NoError(t, err)
	assert.Equal(t, 3, thursday.Needed)
}

func TestEvaluate_DroppedTemporaryLineKeepsStandingDemand(t *testing.T) {
	index := indexOf(standardCatalog(), holds("e1", "q-k"))

	tests := []struct {
		name      string
		temporary DemandLine
	}{
		{"unknown qualification", DemandLine{ID: "t-unknown", QualificationID: "q-unknown", Count: 2}},
		{"inactive qualification", DemandLine{ID: "t-old", QualificationID: "q-old", Count: 2}},
		{"not operationally relevant", DemandLine{ID: "t-admin", QualificationID: "q-admin", Count: 2}},
		{"zero count", DemandLine{ID: "t-zero", QualificationID: "q-k", Count: 0}},
		{"negative count", DemandLine{ID: "t-neg", QualificationID: "q-k", Count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			temporary := tt.temporary
			temporary.ValidFrom = dayPtr(wednesday)
			temporary.ValidTo = dayPtr(wednesday)

			result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1"}, []DemandLine{weekdayK(3), temporary}, index)
			require.NoError(t, err)

			assert.Equal(t, 3, result.Needed)
			assert.Equal(t, 1, result.Matched)
			assert.False(t, result.IsSatisfied)
			require.Len(t, result.MissingByQualification, 1)
			assert.Equal(t, MissingQualification{ShortCode: "K", MissingCount: 2, PriorityPosition: 1}, result.MissingByQualification[0])
		})
	}
}

func TestResolveDemand_InvalidShift(t *testing.T) {
	_, err := ResolveDemand([]DemandLine{weekdayK(1)}, day(wednesday), ShiftLabel(9), indexOf(standardCatalog()))
	assert.ErrorIs(t, err, ErrInvalidShift)
}

func TestEvaluate_MissingCatalogEntryExcludesLine(t *testing.T) {
	index := indexOf(standardCatalog(), holds("e1", "q-k"))
	demand := []DemandLine{
		weekdayK(1),
		{ID: "d-unknown", QualificationID: "q-unknown", Count: 4, IsStanding: true},
		{ID: "d-old", QualificationID: "q-old", Count: 2, IsStanding: true},
		{ID: "d-admin", QualificationID: "q-admin", Count: 2, IsStanding: true},
	}

	result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1"}, demand, index)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Needed)
	assert.True(t, result.IsSatisfied)
}

func TestEvaluate_MissingMergedPerShortCode(t *testing.T) {
	index := indexOf(standardCatalog())
	demand := []DemandLine{
		{ID: "d-m", QualificationID: "q-m", Count: 1, IsStanding: true},
		{ID: "d-k1", QualificationID: "q-k", Count: 2, IsStanding: true},
		{ID: "d-k2", QualificationID: "q-k", Count: 1, IsStanding: true},
	}

	result, err := Evaluate(day(wednesday), ShiftEarly, nil, demand, index)
	require.NoError(t, err)

	assert.Equal(t, []MissingQualification{
		{ShortCode: "K", MissingCount: 3, PriorityPosition: 1},
		{ShortCode: "M", MissingCount: 1, PriorityPosition: 3},
	}, result.MissingByQualification)
	assert.Equal(t, 4, result.Needed)
	assert.Equal(t, 0, result.Have)
}

func TestEvaluate_NoDemandIsSatisfied(t *testing.T) {
	index := indexOf(standardCatalog())
	result, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1", "e2"}, nil, index)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Needed)
	assert.Equal(t, 2, result.Surplus)
	assert.True(t, result.IsSatisfied)
}

func TestEvaluate_InvalidShift(t *testing.T) {
	_, err := Evaluate(day(wednesday), ShiftLabel(9), nil, nil, indexOf(standardCatalog()))
	assert.ErrorIs(t, err, ErrInvalidShift)
}

func TestEvaluate_Conservation(t *testing.T) {
	index := indexOf(standardCatalog(),
		holds("e1", "q-k"),
		holds("e2", "q-l", "q-m"),
		holds("e3", "q-m"),
	)
	demand := []DemandLine{weekdayK(2), {ID: "d-m", QualificationID: "q-m", Count: 2, IsStanding: true}}

	rosters := [][]string{
		nil,
		{"e1"},
		{"e1", "e2"},
		{"e1", "e2", "e3"},
		{"e1", "e2", "e3", "x1", "x2"},
		{"e1", "e1"},
	}

	for _, roster := range rosters {
		result, err := Evaluate(day(wednesday), ShiftEarly, roster, demand, index)
		require.NoError(t, err)

		assert.Equal(t, len(roster), result.Have)
		assert.Equal(t, result.Needed, result.MissingCount()+result.Matched)
		assert.Equal(t, result.Matched, len(result.Assignments))
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	index := indexOf(standardCatalog(),
		holds("e1", "q-k", "q-l"),
		holds("e2", "q-l", "q-k"),
		holds("e3", "q-m"),
		holds("e4", "q-k"),
	)
	demand := []DemandLine{
		{ID: "d-2", QualificationID: "q-l", Count: 1, IsStanding: true},
		{ID: "d-1", QualificationID: "q-k", Count: 2, IsStanding: true},
		{ID: "d-3", QualificationID: "q-m", Count: 2, IsStanding: true},
	}

	first, err := Evaluate(day(wednesday), ShiftEarly, []string{"e4", "e3", "e2", "e1"}, demand, index)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Evaluate(day(wednesday), ShiftEarly, []string{"e1", "e2", "e3", "e4"}, demand, index)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestResolveDemand_OrderedByPriorityThenID(t *testing.T) {
	index := indexOf(standardCatalog())
	demand := []DemandLine{
		{ID: "d-m", QualificationID: "q-m", Count: 1, IsStanding: true},
		{ID: "d-k2", QualificationID: "q-k", Count: 1, IsStanding: true},
		{ID: "d-zero", QualificationID: "q-k", Count: 0, IsStanding: true},
		{ID: "d-k1", QualificationID: "q-k", Count: 1, IsStanding: true},
	}

	resolved, err := ResolveDemand(demand, day(wednesday), ShiftEarly, index)
	require.NoError(t, err)

	ids := make([]string, 0, len(resolved))
	for _, l := range resolved {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"d-k1", "d-k2", "d-m"}, ids)
}
