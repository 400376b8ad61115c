package track

import (
	"fmt"

	"github.com/planbiir/gpxascent/internal/geo"
)

// Peak is a known summit supplied by a lookup layer. Only Coordinates is required.
type Peak struct {
	ID            int             `json:"id,omitempty"`
	Name          string          `json:"name,omitempty"`
	Coordinates   geo.Coordinates `json:"coordinates"`
	ElevationFeet float64         `json:"elevation_ft,omitempty"`
	Prominence    int             `json:"prominence,omitempty"`
	Location      string          `json:"location,omitempty"`
}

// Leg is one side of a peak-relative track. Its net gain is measured against
// the summit, not against the leg's own elevation range.
type Leg struct {
	*Track
	NetGainFeet float64 `json:"net_gain_ft"`
}

// ExtraGainFeet is the climbing beyond the net gain, i.e. terrain undulation.
func (l Leg) ExtraGainFeet() float64 {
	return l.GainFeet() - l.NetGainFeet
}

// Metrics reports the leg's metrics with the summit-relative net gain.
func (l Leg) Metrics() Metrics {
	m := l.Track.Metrics()
	m.NetGainFeet = l.NetGainFeet
	return m
}

// PeakTrack is a track analysed against a known summit.
type PeakTrack struct {
	*Track
	Peak Peak

	ClosestIndex        int
	ClosestPoint        Point
	ClosestDistanceFeet float64

	ToPeak   Leg
	FromPeak Leg
}

// NewPeakTrack locates the point closest to the peak and splits t there.
// The closest point belongs to both legs.
func NewPeakTrack(t *Track, peak Peak) (*PeakTrack, error) {
	if t == nil {
		return nil, ErrEmptyTrack
	}
	if !peak.Coordinates.Valid() {
		return nil, fmt.Errorf("peak %d (%s) at %v: %w", peak.ID, peak.Name, peak.Coordinates, ErrInvalidPeakCoordinates)
	}

	closest, idx := t.ClosestTo(peak.Coordinates)
	last := t.Len() - 1

	pt := &PeakTrack{
		Track:        t,
		Peak:         peak,
		ClosestIndex: idx,
		ClosestPoint: closest,
		ClosestDistanceFeet: geo.MetersToFeet(geo.DistanceMeters(
			closest.Lat, closest.Lon, peak.Coordinates.Lat, peak.Coordinates.Lon)),
	}

	// Each leg needs two points, so widen away from the track ends.
	upEnd := max(idx, 1)
	downStart := min(idx, last-1)

	up, err := t.Slice(0, upEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to build ascent leg: %w", err)
	}
	down, err := t.Slice(downStart, last)
	if err != nil {
		return nil, fmt.Errorf("failed to build descent leg: %w", err)
	}

	summit := pt.SummitElevationFeet()
	pt.ToPeak = Leg{Track: up, NetGainFeet: summit - up.StartElevationFeet()}
	pt.FromPeak = Leg{Track: down, NetGainFeet: summit - down.EndElevationFeet()}

	return pt, nil
}

// SummitElevationFeet is the peak's published elevation, or the elevation of
// the closest track point when the peak has none.
func (pt *PeakTrack) SummitElevationFeet() float64 {
	if pt.Peak.ElevationFeet > 0 {
		return pt.Peak.ElevationFeet
	}
	return geo.MetersToFeet(pt.ClosestPoint.Elevation)
}

// ClosestDistanceMiles is the summit's distance from the track.
func (pt *PeakTrack) ClosestDistanceMiles() float64 {
	return geo.FeetToMiles(pt.ClosestDistanceFeet)
}
