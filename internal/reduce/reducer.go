// Package reduce shrinks oversized tracks below an upload limit while keeping
// their shape: Ramer-Douglas-Peucker first, then a uniform stride if needed.
package reduce

import (
	"time"

	"github.com/planbiir/gpxascent/internal/log"
	"github.com/planbiir/gpxascent/internal/track"
)

// Reducer applies a validated Config.
type Reducer struct {
	config Config
}

// New validates cfg. Zero IterativeThreshold and empty Creator take defaults.
func New(cfg Config) (*Reducer, error) {
	if cfg.MaxPoints < 2 {
		return nil, ErrInvalidTarget
	}
	if cfg.Epsilon < 0 {
		return nil, ErrInvalidEpsilon
	}

	defaults := DefaultConfig()
	if cfg.IterativeThreshold <= 0 {
		cfg.IterativeThreshold = defaults.IterativeThreshold
	}
	if cfg.Creator == "" {
		cfg.Creator = defaults.Creator
	}

	return &Reducer{config: cfg}, nil
}

func (r *Reducer) Config() Config {
	return r.config
}

// Reduce returns t untouched when it already fits, otherwise a rebuilt track
// of at most MaxPoints points that keeps the first and last point.
func (r *Reducer) Reduce(t *track.Track) (Result, error) {
	n := t.Len()
	if n <= r.config.MaxPoints {
		return Result{
			Track: t,
			Stats: Stats{OriginalPoints: n, RDPPoints: n, FinalPoints: n},
		}, nil
	}

	startTime := time.Now()

	points := t.Points()
	if n > r.config.IterativeThreshold {
		points = simplifyIterative(points, r.config.Epsilon)
	} else {
		points = simplify(points, r.config.Epsilon)
	}
	rdpCount := len(points)
	log.Debugw("RDP pass finished", "input", n, "output", rdpCount, "epsilon", r.config.Epsilon)

	strided := false
	if len(points) > r.config.MaxPoints {
		points = stride(points, r.config.MaxPoints)
		strided = true
		log.Debugw("Stride pass finished", "input", rdpCount, "output", len(points), "target", r.config.MaxPoints)
	}

	reduced, err := track.New(points)
	if err != nil {
		return Result{}, err
	}

	stats := Stats{
		OriginalPoints: n,
		RDPPoints:      rdpCount,
		FinalPoints:    reduced.Len(),
		PointsRemoved:  n - reduced.Len(),
		PointsPercent:  float64(n-reduced.Len()) / float64(n) * 100,
		StrideApplied:  strided,
		ProcessingTime: time.Since(startTime),
	}

	log.Debugf("Reduced track %d→%d points (%.1f%% removed) in %v",
		stats.OriginalPoints, stats.FinalPoints, stats.PointsPercent, stats.ProcessingTime)

	return Result{Track: reduced, Reduced: true, Stats: stats}, nil
}
