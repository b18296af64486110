// Command jsontools runs the deterministic JSON tool server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/jsontools/internal/config"
	"github.com/reoring/jsontools/internal/httpapi"
	"github.com/reoring/jsontools/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jsontools",
		Short:         "Deterministic JSON validation and transformation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		logLevel   string
		logJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool endpoints over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-json") {
				cfg.LogJSON = logJSON
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logging.Setup(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
			return httpapi.New(cfg).Run(context.Background())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "listen host")
	cmd.Flags().IntVar(&port, "port", 8000, "listen port")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	return cmd
}
