package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/clients/gmailclient"
	"github.com/jakechorley/shift-cockpit/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/db"
	"github.com/jakechorley/shift-cockpit/pkg/postgres"
	"github.com/jakechorley/shift-cockpit/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env          string
	Cfg          *config.Config
	OAuthCfg     *config.OAuthClientConfig
	Auth         *utils.Authenticator
	SheetsClient *sheetsclient.Client
	GmailClient  *gmailclient.Client
	Database     db.Database
	Postgres     *postgres.DB // set when the store is postgres
	Logger       *zap.Logger
	Ctx          context.Context
}

// Google returns an HTTP client authorized for the Google APIs.
// The sheets store and the gmail client share its token, so consent is asked at most once.
func (app *AppContext) Google() (*http.Client, error) {
	if app.OAuthCfg == nil {
		return nil, fmt.Errorf("oauth client configuration not loaded")
	}
	if app.Auth == nil {
		auth, err := utils.NewAuthenticator(app.OAuthCfg, app.Env, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticator: %w", err)
		}
		app.Auth = auth
	}

	client, err := app.Auth.HTTPClient(app.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}
	return client, nil
}

// Gmail returns the gmail client, creating it on first use
func (app *AppContext) Gmail() (*gmailclient.Client, error) {
	if app.GmailClient != nil {
		return app.GmailClient, nil
	}

	httpClient, err := app.Google()
	if err != nil {
		return nil, err
	}

	app.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(app.Ctx, httpClient, app.Cfg.Summary.GmailSender)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.GmailClient = client
	return client, nil
}

// parseDate parses a YYYY-MM-DD argument
func parseDate(arg string) (time.Time, error) {
	date, err := coverage.ParseDay(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got: %s", arg)
	}
	return date, nil
}

// parseShift parses an early, late or night argument
func parseShift(arg string) (coverage.ShiftLabel, error) {
	shift, err := coverage.ParseShiftLabel(arg)
	if err != nil {
		return 0, fmt.Errorf("shift must be early, late or night, got: %s", arg)
	}
	return shift, nil
}

// startDate returns the optional first argument as a date, defaulting to today
func startDate(args []string) (time.Time, error) {
	if len(args) == 0 || args[0] == "" {
		return coverage.Day(time.Now()), nil
	}
	return parseDate(args[0])
}
