package peaks

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

// Catalog is an offline set of peaks loaded from a GeoJSON FeatureCollection.
type Catalog struct {
	peaks []track.Peak
}

// LoadCatalog reads a GeoJSON peak catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read peak catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes Point features with id, name, elevation_ft, prominence
// and location properties. Non-point features are skipped.
func ParseCatalog(data []byte) (*Catalog, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse peak catalog: %w", err)
	}

	c := &Catalog{peaks: make([]track.Peak, 0, len(fc.Features))}
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		coords := geo.FromOrbPoint(pt)
		if !coords.Valid() {
			return nil, fmt.Errorf("feature %d: %w", i, track.ErrInvalidPeakCoordinates)
		}
		c.peaks = append(c.peaks, track.Peak{
			ID:            f.Properties.MustInt("id", 0),
			Name:          f.Properties.MustString("name", ""),
			Coordinates:   coords,
			ElevationFeet: f.Properties.MustFloat64("elevation_ft", 0),
			Prominence:    f.Properties.MustInt("prominence", 0),
			Location:      f.Properties.MustString("location", ""),
		})
	}
	return c, nil
}

// Len returns the number of peaks in the catalog.
func (c *Catalog) Len() int {
	return len(c.peaks)
}

// Peaks returns a copy of every peak in the catalog.
func (c *Catalog) Peaks() []track.Peak {
	out := make([]track.Peak, len(c.peaks))
	copy(out, c.peaks)
	return out
}

// Find returns the peak with the given ID.
func (c *Catalog) Find(id int) (track.Peak, bool) {
	for _, p := range c.peaks {
		if p.ID == id {
			return p, true
		}
	}
	return track.Peak{}, false
}

// Near returns the peaks inside the bound of radiusMeters around center.
func (c *Catalog) Near(center geo.Coordinates, radiusMeters float64) []track.Peak {
	bound := orbgeo.NewBoundAroundPoint(center.OrbPoint(), radiusMeters)

	var out []track.Peak
	for _, p := range c.peaks {
		if bound.Contains(p.Coordinates.OrbPoint()) {
			out = append(out, p)
		}
	}
	return out
}
