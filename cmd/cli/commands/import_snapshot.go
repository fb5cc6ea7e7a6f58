package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/services"
	"github.com/jakechorley/shift-cockpit/pkg/snapshotfile"
)

// ImportSnapshotCmd creates the importSnapshot command
func ImportSnapshotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importSnapshot <snapshot_file>",
		Short: "Load a YAML snapshot into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := snapshotfile.NewStore(args[0])
			if app.Cfg.Store == config.StoreFile && source.Path() == app.Cfg.SnapshotPath {
				return fmt.Errorf("cannot import %s into itself", args[0])
			}

			snapshot, err := source.Load()
			if err != nil {
				return err
			}

			app.Logger.Debug("importSnapshot command", zap.String("path", args[0]), zap.String("store", app.Cfg.Store))

			summary, err := services.ImportSnapshot(app.Ctx, app.Database, app.Logger, snapshot)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Snapshot imported into %s store\n\n", app.Cfg.Store)
			fmt.Printf("Qualifications:            %d\n", summary.Qualifications)
			fmt.Printf("Employees:                 %d\n", summary.Employees)
			fmt.Printf("Qualification assignments: %d\n", summary.QualificationAssignments)
			fmt.Printf("Demand lines:              %d\n", summary.DemandLines)
			fmt.Printf("Roster entries:            %d\n\n", summary.RosterEntries)

			return nil
		},
	}
}
