package track

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/planbiir/gpxascent/internal/geo"
)

// ElevationThresholdMeters is the vertical noise floor of the gain/loss walk.
const ElevationThresholdMeters = 10.0

// Duration is an elapsed span split into whole days, hours and minutes.
type Duration struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NewDuration floors d into days, hours and minutes. Negative spans become zero.
func NewDuration(d time.Duration) Duration {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	return Duration{
		Days:    totalMinutes / (24 * 60),
		Hours:   (totalMinutes % (24 * 60)) / 60,
		Minutes: totalMinutes % 60,
	}
}

// Metrics is the summary consumed by form fillers and the CLI.
type Metrics struct {
	Points      int      `json:"points"`
	Miles       float64  `json:"miles"`
	GainFeet    float64  `json:"gain_ft"`
	LossFeet    float64  `json:"loss_ft"`
	NetGainFeet float64  `json:"net_gain_ft"`
	Duration    Duration `json:"duration"`
}

func (t *Track) computeMetrics() {
	elevations := make([]float64, len(t.points))
	for i, p := range t.points {
		elevations[i] = p.Elevation
		if i > 0 {
			prev := t.points[i-1]
			t.distanceMeters += geo.DistanceMeters(prev.Lat, prev.Lon, p.Lat, p.Lon)
		}
	}

	// Errors only occur on empty input, which newTrack rules out.
	t.minElevation, _ = stats.Min(elevations)
	t.maxElevation, _ = stats.Max(elevations)

	t.gainMeters, t.lossMeters = elevationChange(elevations, ElevationThresholdMeters)
	t.elapsed = t.Last().Time.Sub(t.First().Time)
}

// elevationChange walks the profile against a baseline that only moves once the
// deviation from it exceeds threshold, so jitter below threshold never counts.
func elevationChange(elevations []float64, threshold float64) (gain, loss float64) {
	if len(elevations) == 0 {
		return 0, 0
	}

	baseline := elevations[0]
	for _, elev := range elevations[1:] {
		switch {
		case elev-baseline > threshold:
			gain += elev - baseline
			baseline = elev
		case baseline-elev > threshold:
			loss += baseline - elev
			baseline = elev
		}
	}
	return gain, loss
}

func (t *Track) DistanceMeters() float64 {
	return t.distanceMeters
}

// DistanceMiles is kept at full precision; round only for display.
func (t *Track) DistanceMiles() float64 {
	return geo.MetersToMiles(t.distanceMeters)
}

// NetGainFeet is the spread between the highest and lowest elevation.
func (t *Track) NetGainFeet() float64 {
	return geo.MetersToFeet(t.maxElevation - t.minElevation)
}

func (t *Track) GainFeet() float64 {
	return geo.MetersToFeet(t.gainMeters)
}

func (t *Track) LossFeet() float64 {
	return geo.MetersToFeet(t.lossMeters)
}

func (t *Track) MinElevationMeters() float64 {
	return t.minElevation
}

func (t *Track) MaxElevationMeters() float64 {
	return t.maxElevation
}

// Elapsed is the wall-clock span between the first and last point.
func (t *Track) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Track) Duration() Duration {
	return NewDuration(t.elapsed)
}

// StartDate is the calendar date of the first point in its recorded location.
func (t *Track) StartDate() string {
	return t.First().Time.Format(time.DateOnly)
}

func (t *Track) StartElevationFeet() float64 {
	return geo.MetersToFeet(t.First().Elevation)
}

func (t *Track) EndElevationFeet() float64 {
	return geo.MetersToFeet(t.Last().Elevation)
}

func (t *Track) Metrics() Metrics {
	return Metrics{
		Points:      len(t.points),
		Miles:       t.DistanceMiles(),
		GainFeet:    t.GainFeet(),
		LossFeet:    t.LossFeet(),
		NetGainFeet: t.NetGainFeet(),
		Duration:    t.Duration(),
	}
}

// SegmentMetrics wraps a sub-range in its own Track and reports its metrics.
func SegmentMetrics(points []Point) (Metrics, error) {
	t, err := New(points)
	if err != nil {
		return Metrics{}, err
	}
	return t.Metrics(), nil
}
