package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/services"
)

// RankReplacementsCmd creates the rankReplacements command
func RankReplacementsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankReplacements <date> <shift>",
		Short: "Rank employees who are off as candidates to fill a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}
			shift, err := parseShift(args[1])
			if err != nil {
				return err
			}

			maxResults, _ := cmd.Flags().GetInt("max")
			excludeRed, _ := cmd.Flags().GetBool("exclude-red")
			if maxResults < 0 {
				return fmt.Errorf("max must not be negative, got: %d", maxResults)
			}

			ranked, err := services.RankReplacements(app.Ctx, app.Database, app.Cfg, app.Logger, date, shift,
				&coverage.ReplacementOptions{MaxResults: maxResults, ExcludeRed: excludeRed})
			if err != nil {
				return err
			}

			fmt.Printf("\nReplacement candidates for %s %s\n\n", args[0], shift)
			if len(ranked) == 0 {
				fmt.Println("No free employees.")
				fmt.Println()
				return nil
			}

			for _, r := range ranked {
				fmt.Printf("  %2d. %s%-7s%s %-20s", r.Rank, signalColor(r.Signal), r.Signal, colorReset, r.DisplayName)
				if len(r.FillsMissing) > 0 {
					fmt.Printf(" fills %s", strings.Join(r.FillsMissing, ", "))
				}
				if r.Satisfies {
					fmt.Printf(" %s(satisfies shift)%s", colorGreen, colorReset)
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("max", 0, "Maximum number of candidates to show (0 = all)")
	cmd.Flags().Bool("exclude-red", false, "Leave out candidates with a red signal")

	return cmd
}

// signalColor maps a neighbour signal to its terminal color
func signalColor(s coverage.Signal) string {
	switch s {
	case coverage.SignalGreen:
		return colorGreen
	case coverage.SignalYellow:
		return colorYellow
	case coverage.SignalAmber:
		return colorAmber
	case coverage.SignalRed:
		return colorRed
	default:
		return colorDim
	}
}
