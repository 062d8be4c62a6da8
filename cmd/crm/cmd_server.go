package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/crm/app/routes"
	"github.com/shashiranjanraj/crm/app/schema"
	"github.com/shashiranjanraj/crm/config"
	"github.com/shashiranjanraj/crm/pkg/app"
	"github.com/shashiranjanraj/crm/pkg/database"
)

var portFlag string

// crm serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if portFlag != "" {
			config.Set("APP_PORT", portFlag)
		}

		s, err := schema.New(database.DB)
		if err != nil {
			return fmt.Errorf("build schema: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.New().
			Routes(routes.API(s, database.DB)).
			Serve(ctx, ":"+config.AppPort())
	},
}

// crm route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.New(nil)
		if err != nil {
			return err
		}

		infos := app.New().Routes(routes.API(s, nil)).RouteTable()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Port to listen on (overrides APP_PORT)")
}
