package peaks

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/log"
	"github.com/planbiir/gpxascent/internal/track"
)

const (
	// DefaultMaxDistanceFeet is how close a summit must be to count as on-track.
	DefaultMaxDistanceFeet = 500.0
	// DefaultSearchRadiusMeters bounds the area query around the track midpoint.
	DefaultSearchRadiusMeters = 16000.0
	// DefaultCacheSize is the number of peak tracks kept per detector.
	DefaultCacheSize = 256
)

// Options tune a Detector.
type Options struct {
	MaxDistanceFeet float64
	CacheSize       int
}

// DefaultOptions returns the on-track threshold and cache size used by the CLI.
func DefaultOptions() Options {
	return Options{
		MaxDistanceFeet: DefaultMaxDistanceFeet,
		CacheSize:       DefaultCacheSize,
	}
}

// Detector matches candidate peaks against one track.
type Detector struct {
	track *track.Track
	opts  Options
	cache *lru.Cache[int, *track.PeakTrack]
}

// NewDetector builds a detector for t.
func NewDetector(t *track.Track, opts Options) (*Detector, error) {
	if t == nil {
		return nil, track.ErrEmptyTrack
	}
	if opts.MaxDistanceFeet <= 0 {
		return nil, fmt.Errorf("max distance must be positive, got %v", opts.MaxDistanceFeet)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	cache, err := lru.New[int, *track.PeakTrack](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create peak cache: %w", err)
	}

	return &Detector{track: t, opts: opts, cache: cache}, nil
}

// Track returns the track the detector was built for.
func (d *Detector) Track() *track.Track {
	return d.track
}

// SearchCenter is the point an area query should be centred on.
func (d *Detector) SearchCenter() geo.Coordinates {
	return d.track.RoughMidPoint().Coordinates()
}

// PeakTrack returns the track analysed against peak. Peaks with a non-zero ID
// are memoized; a cached entry is reused only if every peak field matches.
func (d *Detector) PeakTrack(peak track.Peak) (*track.PeakTrack, error) {
	if peak.ID != 0 {
		if pt, ok := d.cache.Get(peak.ID); ok && pt.Peak == peak {
			return pt, nil
		}
	}

	pt, err := track.NewPeakTrack(d.track, peak)
	if err != nil {
		return nil, err
	}
	if peak.ID != 0 {
		d.cache.Add(peak.ID, pt)
	}
	return pt, nil
}

// Rank analyses every peak and sorts them by distance to the track, closest
// first. Peaks with invalid coordinates are skipped.
func (d *Detector) Rank(peaks []track.Peak) []*track.PeakTrack {
	out := make([]*track.PeakTrack, 0, len(peaks))
	for _, p := range peaks {
		pt, err := d.PeakTrack(p)
		if err != nil {
			log.Debugw("skipping peak", "id", p.ID, "name", p.Name, "error", err)
			continue
		}
		out = append(out, pt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClosestDistanceFeet < out[j].ClosestDistanceFeet
	})
	return out
}

// OnTrack returns the peaks the track passes within MaxDistanceFeet of,
// closest first.
func (d *Detector) OnTrack(peaks []track.Peak) []*track.PeakTrack {
	ranked := d.Rank(peaks)
	out := ranked[:0]
	for _, pt := range ranked {
		if pt.ClosestDistanceFeet < d.opts.MaxDistanceFeet {
			out = append(out, pt)
		}
	}
	log.Debugw("peaks on track", "candidates", len(peaks), "on_track", len(out))
	return out
}

// Label is the display name of a peak: "Name, Location (Elev')".
func Label(pt *track.PeakTrack) string {
	return fmt.Sprintf("%s, %s (%d')", pt.Peak.Name, pt.Peak.Location, int(pt.Peak.ElevationFeet))
}

// SearchLabel is Label followed by the peak's distance from the track.
func SearchLabel(pt *track.PeakTrack) string {
	return fmt.Sprintf("%s - %smi from track", Label(pt), geo.RoundMiles(pt.ClosestDistanceMiles()))
}
