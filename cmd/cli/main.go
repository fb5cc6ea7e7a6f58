package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/cmd/cli/commands"
	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/postgres"
	"github.com/jakechorley/shift-cockpit/pkg/sheetssql"
	"github.com/jakechorley/shift-cockpit/pkg/snapshotfile"
	"github.com/jakechorley/shift-cockpit/pkg/utils/logging"
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Shift Cockpit CLI - Check shift coverage and find replacements",
		Long:  `A CLI tool for checking qualification coverage of shifts, screening moves between shifts and ranking replacement staff.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Postgres != nil {
				app.Postgres.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&app.Env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.CoverageCmd(app))
	rootCmd.AddCommand(commands.SimulateMoveCmd(app))
	rootCmd.AddCommand(commands.ScreenMovesCmd(app))
	rootCmd.AddCommand(commands.RankReplacementsCmd(app))
	rootCmd.AddCommand(commands.CoverageReportCmd(app))
	rootCmd.AddCommand(commands.SendCoverageSummaryCmd(app))
	rootCmd.AddCommand(commands.ImportSnapshotCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration, sets up the logger and opens the configured snapshot store
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadWithEnv(app.Env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(app.Env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application",
		zap.String("environment", app.Env),
		zap.String("unit_id", app.Cfg.UnitID),
		zap.String("store", app.Cfg.Store))

	if app.Cfg.NeedsGoogle() {
		app.Logger.Info("Loading OAuth client configuration")
		app.OAuthCfg, err = config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		app.Logger.Debug("OAuth configuration loaded successfully")
	}

	if err := openStore(app); err != nil {
		return err
	}
	app.Logger.Info("Snapshot store initialized successfully")

	return nil
}

// openStore sets app.Database to the backend named by cfg.Store
func openStore(app *commands.AppContext) error {
	switch app.Cfg.Store {
	case config.StoreFile:
		app.Logger.Info("Using snapshot file", zap.String("path", app.Cfg.SnapshotPath))
		app.Database = snapshotfile.NewStore(app.Cfg.SnapshotPath)

	case config.StorePostgres:
		app.Logger.Info("Connecting to PostgreSQL")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Postgres = pg
		app.Database = pg

	case config.StoreSheets:
		app.Logger.Info("Initializing sheets client")
		client, err := newSheetsClient(app)
		if err != nil {
			return err
		}
		app.SheetsClient = client

		schema, err := db.Schema()
		if err != nil {
			return fmt.Errorf("failed to create database schema: %w", err)
		}
		app.Logger.Debug("Database schema created", zap.Int("tables", len(schema.Tables)))

		app.Logger.Info("Connecting to database", zap.String("spreadsheet_id", app.Cfg.DatabaseSheetID))
		ssqlDB, err := sheetssql.NewDB(app.SheetsClient, app.Cfg.DatabaseSheetID, schema)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.Database = db.NewDB(ssqlDB)

	default:
		return fmt.Errorf("unknown store: %s", app.Cfg.Store)
	}

	return nil
}

func newSheetsClient(app *commands.AppContext) (*sheetsclient.Client, error) {
	httpClient, err := app.Google()
	if err != nil {
		return nil, err
	}
	client, err := sheetsclient.NewClient(app.Ctx, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return client, nil
}
