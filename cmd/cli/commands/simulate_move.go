package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/services"
)

// SimulateMoveCmd creates the simulateMove command
func SimulateMoveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "simulateMove <employee_id> <source_shift> <destination_shift> <date>",
		Short: "Check whether moving an employee between shifts keeps both covered",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseShift(args[1])
			if err != nil {
				return err
			}
			destination, err := parseShift(args[2])
			if err != nil {
				return err
			}
			date, err := parseDate(args[3])
			if err != nil {
				return err
			}

			req := coverage.MoveRequest{
				EmployeeID:  args[0],
				Source:      source,
				Destination: destination,
				Date:        date,
			}
			app.Logger.Debug("simulateMove command",
				zap.String("employee_id", req.EmployeeID),
				zap.Stringer("source", source),
				zap.Stringer("destination", destination),
				zap.String("date", args[3]))

			result, err := services.SimulateMove(app.Ctx, app.Database, app.Cfg, app.Logger, req)
			var rejected *coverage.MoveRejectedError
			if errors.As(err, &rejected) {
				fmt.Printf("\n%s✗ Move rejected:%s %v\n\n", colorRed, colorReset, rejected.Err)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println()
			if result.Feasible {
				fmt.Printf("%s✓ Move is feasible%s\n\n", colorGreen, colorReset)
			} else {
				fmt.Printf("%s✗ Move leaves a shift short%s\n\n", colorRed, colorReset)
			}
			printCoverage(result.SourceCoverage)
			printCoverage(result.DestinationCoverage)
			fmt.Println()

			return nil
		},
	}
}

// ScreenMovesCmd creates the screenMoves command
func ScreenMovesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "screenMoves <source_shift> <destination_shift> <date>",
		Short: "Simulate moving each employee on a shift to another shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseShift(args[0])
			if err != nil {
				return err
			}
			destination, err := parseShift(args[1])
			if err != nil {
				return err
			}
			date, err := parseDate(args[2])
			if err != nil {
				return err
			}

			moves, err := services.ScreenMoves(app.Ctx, app.Database, app.Cfg, app.Logger, source, destination, date)
			if err != nil {
				return err
			}

			fmt.Printf("\nMoves from %s to %s on %s\n\n", source, destination, args[2])
			if len(moves) == 0 {
				fmt.Println("Nobody is on the source shift.")
				fmt.Println()
				return nil
			}

			feasible := 0
			for _, m := range moves {
				mark := colorRed + "✗" + colorReset
				if m.Result.Feasible {
					mark = colorGreen + "✓" + colorReset
					feasible++
				}
				fmt.Printf("  %s %-20s", mark, m.EmployeeID)
				if missing := formatMissing(m.Result.SourceCoverage.MissingByQualification); missing != "" {
					fmt.Printf("  %s%s short: %s%s", colorDim, source, missing, colorReset)
				}
				if missing := formatMissing(m.Result.DestinationCoverage.MissingByQualification); missing != "" {
					fmt.Printf("  %s%s short: %s%s", colorDim, destination, missing, colorReset)
				}
				fmt.Println()
			}
			fmt.Printf("\n%d of %d moves are feasible\n\n", feasible, len(moves))

			return nil
		},
	}
}
