package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/config"
	"github.com/rogerio-castellano/chuzone-catalog/internal/logger"
)

// cli carries what the subcommands share once the root has run.
type cli struct {
	configFile string
	cfg        *config.Config
	log        *zap.Logger
}

// @title ChuZone Catalog API
// @version 1.0
// @description Product catalog with filtered views, statistics and confirmed deletions.
// @host localhost:8080
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "chuzone",
		Short: "ChuZone product catalog",
		Long: `ChuZone keeps a small product catalog in a single key of a key-value store.

Run "chuzone serve" for the web page and JSON API, or use the catalog
subcommands directly from a terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.App.Environment, "chuzone")
			if err != nil {
				return err
			}
			c.cfg, c.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default config.yaml in . or /etc/chuzone)")

	root.AddCommand(
		c.serveCmd(),
		c.listCmd(),
		c.addCmd(),
		c.deleteCmd(),
		c.clearCmd(),
		c.statsCmd(),
	)
	return root
}
