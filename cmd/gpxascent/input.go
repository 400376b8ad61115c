package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/gpx"
	"github.com/planbiir/gpxascent/internal/track"
)

// peakFlags identify a summit on the command line.
type peakFlags struct {
	lat, lon    float64
	elevationFt float64
	name        string
	catalog     string
	peakID      int
}

func addInputFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "input", "i", "", "Input GPX file")
}

func (p *peakFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&p.lat, "lat", 0, "Peak latitude")
	fs.Float64Var(&p.lon, "lon", 0, "Peak longitude")
	fs.Float64Var(&p.elevationFt, "elevation-ft", 0, "Peak elevation in feet (default: closest track point)")
	fs.StringVar(&p.name, "name", "", "Peak name")
	fs.StringVar(&p.catalog, "catalog", "", "GeoJSON peak catalog")
	fs.IntVar(&p.peakID, "peak-id", 0, "Peak id in the catalog")
}

// set reports whether a peak was given by coordinates or by catalog id.
func (p *peakFlags) set(fs *pflag.FlagSet) bool {
	return (fs.Changed("lat") && fs.Changed("lon")) || (p.catalog != "" && p.peakID != 0)
}

func (p *peakFlags) peak(fs *pflag.FlagSet, progress io.Writer) (track.Peak, error) {
	if p.catalog != "" && p.peakID != 0 {
		catalog, err := loadCatalog(progress, p.catalog)
		if err != nil {
			return track.Peak{}, err
		}
		peak, ok := catalog.Find(p.peakID)
		if !ok {
			return track.Peak{}, fmt.Errorf("peak %d not found in %s", p.peakID, p.catalog)
		}
		return peak, nil
	}

	if !fs.Changed("lat") || !fs.Changed("lon") {
		return track.Peak{}, errors.New("either --lat and --lon or --catalog and --peak-id are required")
	}
	return track.Peak{
		Name:          p.name,
		Coordinates:   geo.Coordinates{Lat: p.lat, Lon: p.lon},
		ElevationFeet: p.elevationFt,
	}, nil
}

// loadDocument reports progress on w so stdout stays clean for results.
func loadDocument(w io.Writer, inputFile string) (*gpx.Document, error) {
	if inputFile == "" {
		return nil, errors.New("input file is required (-i)")
	}

	fmt.Fprintf(w, "📖 Reading GPX file: %s\n", inputFile)
	doc, err := gpx.Parse(inputFile)
	if err != nil {
		return nil, fmt.Errorf("error reading GPX file: %w", err)
	}
	return doc, nil
}

func loadTrack(w io.Writer, inputFile string) (*gpx.Document, *track.Track, error) {
	doc, err := loadDocument(w, inputFile)
	if err != nil {
		return nil, nil, err
	}
	t, err := doc.Track()
	if err != nil {
		return nil, nil, err
	}
	return doc, t, nil
}

// outputName derives <input>_<suffix><ext> when no output file was given.
func outputName(inputFile, suffix, ext string) string {
	if ext == "" {
		ext = filepath.Ext(inputFile)
	}
	base := strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
	return base + "_" + suffix + ext
}
