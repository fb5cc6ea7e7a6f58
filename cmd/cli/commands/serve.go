package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-cockpit/internal/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the coverage API over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.HTTP.Addr
			}
			if app.Env == "prod" {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(api.NewHandler(app.Database, app.Cfg, app.Logger), app.Logger)
			return api.Serve(ctx, addr, router, app.Logger)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to http.addr from the config)")

	return cmd
}
