package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/peaks"
	"github.com/planbiir/gpxascent/internal/track"
)

var peaksOpts struct {
	input      string
	catalog    string
	peakbagger string
	all        bool
}

var peaksCmd = &cobra.Command{
	Use:   "peaks",
	Short: "List the summits a track passes",
	Long: `List the summits a track passes.

Candidates come from a GeoJSON catalog (searched around the track midpoint) or
from a saved peak search response. Peaks closer to the track than
peaks.max_distance_ft are listed, closest first. --all lists every candidate
with its distance from the track.`,
	Example: `  gpxascent peaks -i track.gpx --catalog peaks.geojson
  gpxascent peaks -i track.gpx --peakbagger search.xml --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (peaksOpts.catalog == "") == (peaksOpts.peakbagger == "") {
			return errors.New("exactly one of --catalog or --peakbagger is required")
		}

		out, progress := cmd.OutOrStdout(), cmd.ErrOrStderr()

		_, t, err := loadTrack(progress, peaksOpts.input)
		if err != nil {
			return err
		}

		detector, err := peaks.NewDetector(t, cfg.Peaks.Options())
		if err != nil {
			return err
		}

		candidates, err := loadCandidates(progress, detector)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "🔎 %d candidate peaks\n", len(candidates))

		if peaksOpts.all {
			for _, pt := range detector.Rank(candidates) {
				printPeak(out, pt, peaks.SearchLabel(pt))
			}
			return nil
		}

		onTrack := detector.OnTrack(candidates)
		if len(onTrack) == 0 {
			fmt.Fprintf(out, "❌ No peaks within %.0f ft of the track\n", cfg.Peaks.MaxDistanceFeet)
			return nil
		}
		fmt.Fprintf(out, "⛰️  %d peaks on track:\n", len(onTrack))
		for _, pt := range onTrack {
			printPeak(out, pt, peaks.Label(pt))
		}
		return nil
	},
}

func loadCandidates(progress io.Writer, detector *peaks.Detector) ([]track.Peak, error) {
	if peaksOpts.catalog != "" {
		catalog, err := loadCatalog(progress, peaksOpts.catalog)
		if err != nil {
			return nil, err
		}
		return catalog.Near(detector.SearchCenter(), cfg.Peaks.SearchRadiusMeters), nil
	}

	f, err := os.Open(peaksOpts.peakbagger)
	if err != nil {
		return nil, fmt.Errorf("error reading peak search response: %w", err)
	}
	defer f.Close()
	return peaks.ParsePeakbagger(f)
}

func loadCatalog(w io.Writer, path string) (*peaks.Catalog, error) {
	fmt.Fprintf(w, "📚 Loading peak catalog: %s\n", path)
	return peaks.LoadCatalog(path)
}

func printPeak(w io.Writer, pt *track.PeakTrack, label string) {
	if pt.Peak.ID != 0 {
		fmt.Fprintf(w, "   • [%d] %s\n", pt.Peak.ID, label)
		return
	}
	fmt.Fprintf(w, "   • %s\n", label)
}

func init() {
	rootCmd.AddCommand(peaksCmd)
	flags := peaksCmd.Flags()
	addInputFlag(flags, &peaksOpts.input)
	flags.StringVar(&peaksOpts.catalog, "catalog", "", "GeoJSON peak catalog")
	flags.StringVar(&peaksOpts.peakbagger, "peakbagger", "", "Saved peak search response (XML)")
	flags.BoolVar(&peaksOpts.all, "all", false, "List every candidate with its distance from the track")
}
