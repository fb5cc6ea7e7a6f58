package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorAmber  = "\033[38;5;208m"
	colorDim    = "\033[2m"
)

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage <date> <shift>",
		Short: "Check whether a shift has enough qualified staff",
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

			app.Logger.Debug("coverage command", zap.String("date", args[0]), zap.Stringer("shift", shift))

			result, err := services.EvaluateCoverage(app.Ctx, app.Database, app.Cfg, app.Logger, date, shift)
			if err != nil {
				return err
			}

			fmt.Println()
			printCoverage(result)
			fmt.Println()

			return nil
		},
	}
}

// printCoverage prints one shift's coverage as a headline and the missing qualifications
func printCoverage(result *coverage.CoverageResult) {
	status := colorGreen + "✓ satisfied" + colorReset
	if !result.IsSatisfied {
		status = colorRed + "✗ short" + colorReset
	}

	fmt.Printf("%s %-5s  %s  have %d, need %d, matched %d", result.Date, result.Shift, status, result.Have, result.Needed, result.Matched)
	if result.Surplus > 0 {
		fmt.Printf(", surplus %d", result.Surplus)
	}
	fmt.Println()

	if missing := formatMissing(result.MissingByQualification); missing != "" {
		fmt.Printf("  missing: %s\n", missing)
	}
}

// formatMissing renders missing qualifications as "2x K, 1x L"
func formatMissing(missing []coverage.MissingQualification) string {
	parts := make([]string, len(missing))
	for i, m := range missing {
		parts[i] = fmt.Sprintf("%dx %s", m.MissingCount, m.ShortCode)
	}
	return strings.Join(parts, ", ")
}
