package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

var statsOpts struct {
	input string
	json  bool
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show distance, elevation and duration of a track",
	Example: `  gpxascent stats -i track.gpx
  gpxascent stats -i track.gpx --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		doc, t, err := loadTrack(cmd.ErrOrStderr(), statsOpts.input)
		if err != nil {
			return err
		}

		if statsOpts.json {
			data, err := json.MarshalIndent(t.Metrics(), "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling stats: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		points, tracks, segments := doc.Stats()
		fmt.Fprintf(out, "📊 Track: %s points across %d tracks, %d segments\n",
			humanize.Comma(int64(points)), tracks, segments)
		printMetrics(out, t)
		return nil
	},
}

func printMetrics(w io.Writer, t *track.Track) {
	m := t.Metrics()
	fmt.Fprintf(w, "\n📊 Track Statistics:\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(w, "📅 Date: %s\n", t.StartDate())
	fmt.Fprintf(w, "📍 Points: %s\n", humanize.Comma(int64(m.Points)))
	fmt.Fprintf(w, "📏 Distance: %s mi\n", geo.RoundMiles(m.Miles))
	fmt.Fprintf(w, "⛰️  Elevation: %s → %s ft (range %s ft)\n",
		humanize.Comma(int64(t.StartElevationFeet())), humanize.Comma(int64(t.EndElevationFeet())),
		humanize.Comma(int64(m.NetGainFeet)))
	fmt.Fprintf(w, "📈 Gain: %s ft\n", humanize.Comma(int64(m.GainFeet)))
	fmt.Fprintf(w, "📉 Loss: %s ft\n", humanize.Comma(int64(m.LossFeet)))
	fmt.Fprintf(w, "⏱️  Duration: %d days, %d hours, %d minutes\n",
		m.Duration.Days, m.Duration.Hours, m.Duration.Minutes)
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addInputFlag(statsCmd.Flags(), &statsOpts.input)
	statsCmd.Flags().BoolVar(&statsOpts.json, "json", false, "Output statistics as JSON")
}
