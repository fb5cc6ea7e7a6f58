package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-cockpit/pkg/core/services"
)

// CoverageReportCmd creates the coverageReport command
func CoverageReportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverageReport [start_date]",
		Short: "Evaluate every shift on the configured report dates (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := startDate(args)
			if err != nil {
				return err
			}
			onlyShort, _ := cmd.Flags().GetBool("short")

			report, err := services.CoverageReport(app.Ctx, app.Database, app.Cfg, app.Logger, start)
			if err != nil {
				return err
			}

			fmt.Printf("\nCoverage report for unit %s, %s to %s\n\n", report.UnitID, report.From, report.To)

			shifts := report.Shifts
			if onlyShort {
				shifts = report.Unsatisfied()
			}
			for _, s := range shifts {
				printCoverage(s)
			}

			if len(report.Skipped) > 0 {
				fmt.Printf("\n%sExcluded:%s", colorDim, colorReset)
				for _, s := range report.Skipped {
					fmt.Printf(" %s %s;", s.Date, s.Shift)
				}
				fmt.Println()
			}

			fmt.Printf("\n%d of %d shifts are short of staff\n\n", len(report.Unsatisfied()), len(report.Shifts))

			return nil
		},
	}

	cmd.Flags().Bool("short", false, "Only show shifts that are short of staff")

	return cmd
}

// SendCoverageSummaryCmd creates the sendCoverageSummary command
func SendCoverageSummaryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sendCoverageSummary [start_date]",
		Short: "Email the coverage report to the configured recipients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := startDate(args)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if dryRun {
				report, err := services.CoverageReport(app.Ctx, app.Database, app.Cfg, app.Logger, start)
				if err != nil {
					return err
				}
				fmt.Printf("\n%sDRY RUN, nothing sent%s\n\n", colorYellow, colorReset)
				fmt.Println(services.FormatSummary(report))
				return nil
			}

			mailer, err := app.Gmail()
			if err != nil {
				return err
			}

			result, err := services.SendCoverageSummary(app.Ctx, app.Database, mailer, app.Cfg, app.Logger, start)
			if result != nil {
				for _, r := range result.Recipients {
					fmt.Printf("  ✓ %s\n", r)
				}
			}
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Sent \"%s\" to %d recipients\n\n", result.Subject, len(result.Recipients))

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print the summary instead of sending it")

	return cmd
}
