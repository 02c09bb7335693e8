package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"solar-site-area/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "site-area",
	Short: "Solar site usable-area engine",
	Long:  "Computes the buildable area of a solar site from boundary polygons and exclusion zones (wetlands, setbacks, easements) imported from KML, GeoJSON, or shapefiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
