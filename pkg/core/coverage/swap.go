package coverage

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// MoveRequest describes a hypothetical move of one employee between two shifts of the same day
type MoveRequest struct {
	EmployeeID  string
	Source      ShiftLabel
	Destination ShiftLabel
	Date        time.Time
}

// ScreenedMove is the simulated outcome of moving one candidate
type ScreenedMove struct {
	EmployeeID string      `json:"employeeId"`
	Result     *SwapResult `json:"result"`
}

// validateMove checks the preconditions of a move against the roster
func validateMove(req MoveRequest, roster *Roster) error {
	reject := func(err error) error {
		return &MoveRejectedError{
			EmployeeID:  req.EmployeeID,
			Source:      req.Source,
			Destination: req.Destination,
			Err:         err,
		}
	}

	if !req.Source.IsValid() || !req.Destination.IsValid() {
		return reject(ErrInvalidShift)
	}
	if req.Source == req.Destination {
		return reject(ErrSameShift)
	}
	if shift, ok := roster.ShiftOf(req.EmployeeID, req.Date); !ok || shift != req.Source {
		return reject(ErrNotOnSourceShift)
	}
	return nil
}

// SimulateMove evaluates both shifts as if the employee had moved from Source to Destination.
// The move is feasible when both shifts are satisfied afterwards.
//
// Precondition violations return a *MoveRejectedError and no result.
func SimulateMove(req MoveRequest, roster *Roster, demand []DemandLine, index *QualificationIndex) (*SwapResult, error) {
	if err := validateMove(req, roster); err != nil {
		return nil, err
	}

	sourceAfter := without(roster.OnShift(req.Date, req.Source), req.EmployeeID)
	destinationAfter := with(roster.OnShift(req.Date, req.Destination), req.EmployeeID)

	sourceCoverage, err := Evaluate(req.Date, req.Source, sourceAfter, demand, index)
	if err != nil {
		return nil, err
	}
	destinationCoverage, err := Evaluate(req.Date, req.Destination, destinationAfter, demand, index)
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		Feasible:            sourceCoverage.IsSatisfied && destinationCoverage.IsSatisfied,
		SourceCoverage:      sourceCoverage,
		DestinationCoverage: destinationCoverage,
	}, nil
}

// ScreenMoves simulates moving every employee on the source shift to the destination shift.
// Each candidate is evaluated in its own goroutine; limit caps how many run at once
// (0 or less means one per candidate). Results are ordered by employee ID.
func ScreenMoves(ctx context.Context, source, destination ShiftLabel, date time.Time, roster *Roster, demand []DemandLine, index *QualificationIndex, limit int) ([]ScreenedMove, error) {
	if !source.IsValid() || !destination.IsValid() {
		return nil, &MoveRejectedError{Source: source, Destination: destination, Err: ErrInvalidShift}
	}
	if source == destination {
		return nil, &MoveRejectedError{Source: source, Destination: destination, Err: ErrSameShift}
	}

	candidates := roster.OnShift(date, source)
	results := make([]ScreenedMove, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, employeeID := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := SimulateMove(MoveRequest{
				EmployeeID:  employeeID,
				Source:      source,
				Destination: destination,
				Date:        date,
			}, roster, demand, index)
			if err != nil {
				return err
			}
			results[i] = ScreenedMove{EmployeeID: employeeID, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].EmployeeID < results[j].EmployeeID
	})

	return results, nil
}

func without(ids []string, employeeID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != employeeID {
			out = append(out, id)
		}
	}
	return out
}

func with(ids []string, employeeID string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, without(ids, employeeID)...)
	out = append(out, employeeID)
	sort.Strings(out)
	return out
}
