package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/planbiir/gpxascent/internal/reduce"
)

var reduceOpts struct {
	input     string
	output    string
	maxPoints int
	epsilon   float64
	dryRun    bool
	statsJSON bool
}

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Shrink a track below the upload point limit",
	Example: `  gpxascent reduce -i track.gpx
  gpxascent reduce -i track.gpx -o small.gpx --max-points 2000
  gpxascent reduce -i track.gpx --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rcfg := cfg.Reduce
		if cmd.Flags().Changed("max-points") {
			rcfg.MaxPoints = reduceOpts.maxPoints
		}
		if cmd.Flags().Changed("epsilon") {
			rcfg.Epsilon = reduceOpts.epsilon
		}
		reducer, err := reduce.New(rcfg)
		if err != nil {
			return err
		}

		out, progress := cmd.OutOrStdout(), cmd.ErrOrStderr()

		doc, t, err := loadTrack(progress, reduceOpts.input)
		if err != nil {
			return err
		}

		points, tracks, _ := doc.Stats()
		fmt.Fprintf(progress, "📊 Original track: %s points across %d tracks\n", humanize.Comma(int64(points)), tracks)

		result, err := reducer.Reduce(t)
		if err != nil {
			return fmt.Errorf("error reducing track: %w", err)
		}

		if reduceOpts.statsJSON {
			data, err := json.MarshalIndent(result.Stats, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling stats: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			printReduceStats(out, result.Stats, rcfg.MaxPoints)
		}

		if !result.Reduced {
			fmt.Fprintf(progress, "✅ Track already fits in %s points - nothing to do\n", humanize.Comma(int64(rcfg.MaxPoints)))
			return nil
		}

		if reduceOpts.dryRun {
			fmt.Fprintf(progress, "🔍 Dry run completed - no files written\n")
			return nil
		}

		output := reduceOpts.output
		if output == "" {
			output = outputName(reduceOpts.input, "reduced", "")
		}

		doc.RebuildFromPoints(result.Track.Points(), reducer.Config().Creator)

		fmt.Fprintf(progress, "💾 Writing reduced track: %s\n", output)
		if err := doc.Write(output); err != nil {
			return fmt.Errorf("error writing GPX file: %w", err)
		}

		size := ""
		if info, err := os.Stat(output); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(progress, "✅ Track reduced successfully! %s\n", size)
		fmt.Fprintf(progress, "   %s → %s points (%.1f%% removed)\n",
			humanize.Comma(int64(result.Stats.OriginalPoints)), humanize.Comma(int64(result.Stats.FinalPoints)),
			result.Stats.PointsPercent)
		return nil
	},
}

func printReduceStats(w io.Writer, stats reduce.Stats, maxPoints int) {
	fmt.Fprintf(w, "\n📊 Reduction Statistics:\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(w, "🎯 Limit: %s points\n", humanize.Comma(int64(maxPoints)))
	fmt.Fprintf(w, "📍 Points: %d → %d (%d removed, %.1f%%)\n",
		stats.OriginalPoints, stats.FinalPoints, stats.PointsRemoved, stats.PointsPercent)
	fmt.Fprintf(w, "🔄 Processing Steps:\n")
	fmt.Fprintf(w, "   • Douglas-Peucker: %d points\n", stats.RDPPoints)
	if stats.StrideApplied {
		fmt.Fprintf(w, "   • Uniform stride: %d points\n", stats.FinalPoints)
	}
	fmt.Fprintf(w, "   • Final result: %d points\n", stats.FinalPoints)
	fmt.Fprintf(w, "⏱️  Processing Time: %v\n", stats.ProcessingTime)
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func init() {
	rootCmd.AddCommand(reduceCmd)
	flags := reduceCmd.Flags()
	addInputFlag(flags, &reduceOpts.input)
	flags.StringVarP(&reduceOpts.output, "output", "o", "", "Output GPX file (default: <input>_reduced.gpx)")
	flags.IntVar(&reduceOpts.maxPoints, "max-points", reduce.DefaultConfig().MaxPoints, "Maximum number of points in the output")
	flags.Float64Var(&reduceOpts.epsilon, "epsilon", reduce.DefaultConfig().Epsilon, "Douglas-Peucker tolerance")
	flags.BoolVar(&reduceOpts.dryRun, "dry-run", false, "Show statistics without writing output file")
	flags.BoolVar(&reduceOpts.statsJSON, "stats-json", false, "Output statistics as JSON")
}
