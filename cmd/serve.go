package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rionatty/ampower-visualize/internal/config"
	"github.com/rionatty/ampower-visualize/internal/links"
	"github.com/rionatty/ampower-visualize/internal/logger"
	"github.com/rionatty/ampower-visualize/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve traceability pages and the graph API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		addr := serveAddr
		if addr == "" {
			addr = config.GetEnvString(config.EnvAddr, config.DefaultAddr)
		}

		service := links.NewService(links.DefaultRegistry(d), logger.Default(), graphOptions()...)
		e := server.New(&server.App{
			Store:  d,
			Links:  service,
			Render: renderOptions(),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, e, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default $"+config.EnvAddr+" or "+config.DefaultAddr+")")
	serveCmd.Flags().BoolVar(&srcNested, "nested", false, "Link purchase invoices and receipts under their purchase orders")
	serveCmd.Flags().StringVar(&renderSiteURL, "site-url", "", "Base URL document links point to (default $"+config.EnvSiteURL+")")
	rootCmd.AddCommand(serveCmd)
}
