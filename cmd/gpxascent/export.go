package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/export"
	"github.com/planbiir/gpxascent/internal/track"
)

var exportOpts struct {
	input  string
	output string
	peak   peakFlags
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a track, or its ascent and descent legs, as GeoJSON",
	Example: `  gpxascent export -i track.gpx -o track.geojson
  gpxascent export -i track.gpx --lat 46.5763 --lon 7.9904`,
	RunE: func(cmd *cobra.Command, args []string) error {
		progress := cmd.ErrOrStderr()

		_, t, err := loadTrack(progress, exportOpts.input)
		if err != nil {
			return err
		}

		var value json.Marshaler = export.Track(t)
		if exportOpts.peak.set(cmd.Flags()) {
			peak, err := exportOpts.peak.peak(cmd.Flags(), progress)
			if err != nil {
				return err
			}
			pt, err := track.NewPeakTrack(t, peak)
			if err != nil {
				return err
			}
			value = export.PeakTrack(pt)
		}

		data, err := value.MarshalJSON()
		if err != nil {
			return fmt.Errorf("error encoding GeoJSON: %w", err)
		}

		output := exportOpts.output
		if output == "" {
			output = outputName(exportOpts.input, "export", ".geojson")
		}
		fmt.Fprintf(progress, "💾 Writing GeoJSON: %s\n", output)
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("error writing GeoJSON: %w", err)
		}
		fmt.Fprintf(progress, "✅ Exported %s\n", humanize.Bytes(uint64(len(data))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	flags := exportCmd.Flags()
	addInputFlag(flags, &exportOpts.input)
	flags.StringVarP(&exportOpts.output, "output", "o", "", "Output GeoJSON file (default: <input>_export.geojson)")
	exportOpts.peak.register(flags)
}
