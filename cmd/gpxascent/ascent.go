package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/ascent"
	"github.com/planbiir/gpxascent/internal/peaks"
)

var ascentOpts struct {
	input string
	peak  peakFlags
	json  bool
}

var ascentCmd = &cobra.Command{
	Use:   "ascent",
	Short: "Compute ascent report values for one summit",
	Example: `  gpxascent ascent -i track.gpx --lat 46.5763 --lon 7.9904 --elevation-ft 13642 --name Jungfrau
  gpxascent ascent -i track.gpx --catalog peaks.geojson --peak-id 1234 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, progress := cmd.OutOrStdout(), cmd.ErrOrStderr()

		peak, err := ascentOpts.peak.peak(cmd.Flags(), progress)
		if err != nil {
			return err
		}

		_, t, err := loadTrack(progress, ascentOpts.input)
		if err != nil {
			return err
		}

		detector, err := peaks.NewDetector(t, cfg.Peaks.Options())
		if err != nil {
			return err
		}
		pt, err := detector.PeakTrack(peak)
		if err != nil {
			return err
		}
		if pt.ClosestDistanceFeet >= cfg.Peaks.MaxDistanceFeet {
			fmt.Fprintf(progress, "⚠️  Track passes %.0f ft from the summit\n", pt.ClosestDistanceFeet)
		}

		form := ascent.Build(pt)
		if ascentOpts.json {
			data, err := json.MarshalIndent(form, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling ascent: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "\n⛰️  Ascent of %s\n", peaks.Label(pt))
		fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		for _, f := range form.Fields() {
			if f.ID == "JournalText" {
				fmt.Fprintf(out, "%-12s\n%s\n", f.ID+":", f.Value)
				continue
			}
			fmt.Fprintf(out, "%-12s %s\n", f.ID+":", f.Value)
		}
		fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ascentCmd)
	flags := ascentCmd.Flags()
	addInputFlag(flags, &ascentOpts.input)
	ascentOpts.peak.register(flags)
	flags.BoolVar(&ascentOpts.json, "json", false, "Output form values as JSON")
}
