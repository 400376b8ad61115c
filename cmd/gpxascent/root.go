package main

import (
	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/config"
	"github.com/planbiir/gpxascent/internal/log"
)

const version = "v0.3.0"

var (
	cfgFile string
	debug   bool

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gpxascent",
	Short: "Analyse GPX tracks for peak ascent reports",
	Long: `gpxascent - Analyse GPX tracks for peak ascent reports

Computes distance, elevation gain/loss and duration for a track, finds the
summits it passes, splits it into ascent and descent legs and shrinks oversized
tracks below the upload limit.`,
	Example: `  gpxascent stats -i track.gpx
  gpxascent reduce -i "My Activity.gpx"
  gpxascent peaks -i track.gpx --catalog peaks.geojson
  gpxascent ascent -i track.gpx --lat 46.5763 --lon 7.9904 --elevation-ft 13642`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			loaded.Debug = debug
		}
		cfg = loaded
		return log.Init(cfg.Debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&cfgFile, "config", "", "Config file (YAML, TOML or JSON)")
	pFlags.BoolVar(&debug, "debug", false, "Enable debug logging")
}
