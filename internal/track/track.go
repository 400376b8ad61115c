// Package track models a recorded GPS track and the statistics derived from it.
//
// A Track is built once from an immutable point list and computes every metric
// at construction time, so it can be shared freely between readers.
package track

import (
	"fmt"
	"time"

	"github.com/planbiir/gpxascent/internal/geo"
)

// Point is a single GPS fix.
type Point struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Elevation float64   `json:"ele"` // meters
	Time      time.Time `json:"time"`
}

// Coordinates drops elevation and time.
func (p Point) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: p.Lat, Lon: p.Lon}
}

// Record is a point as delivered by a document parser, before validation.
// Nil Elevation or Time means the source had no value.
type Record struct {
	Lat       float64
	Lon       float64
	Elevation *float64
	Time      *time.Time
}

// Track is an ordered sequence of at least two points.
type Track struct {
	points []Point

	distanceMeters float64
	minElevation   float64
	maxElevation   float64
	gainMeters     float64
	lossMeters     float64
	elapsed        time.Duration
}

// FromRecords validates parser output and builds a Track from it.
func FromRecords(records []Record) (*Track, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTrack
	}

	points := make([]Point, len(records))
	for i, r := range records {
		if r.Elevation == nil {
			return nil, fmt.Errorf("point %d: %w", i, ErrMissingElevation)
		}
		if r.Time == nil {
			return nil, fmt.Errorf("point %d: %w", i, ErrMissingTimestamp)
		}
		points[i] = Point{
			Lat:       r.Lat,
			Lon:       r.Lon,
			Elevation: *r.Elevation,
			Time:      *r.Time,
		}
	}

	return newTrack(points)
}

// New builds a Track from already typed points. The slice is copied.
func New(points []Point) (*Track, error) {
	cp := make([]Point, len(points))
	copy(cp, points)
	return newTrack(cp)
}

func newTrack(points []Point) (*Track, error) {
	switch len(points) {
	case 0:
		return nil, ErrEmptyTrack
	case 1:
		return nil, ErrSingleTrackPoint
	}

	t := &Track{points: points}
	t.computeMetrics()
	return t, nil
}

// Len returns the number of points.
func (t *Track) Len() int {
	return len(t.points)
}

// Points returns a copy of the point sequence.
func (t *Track) Points() []Point {
	cp := make([]Point, len(t.points))
	copy(cp, t.points)
	return cp
}

// At returns the i-th point.
func (t *Track) At(i int) Point {
	return t.points[i]
}

func (t *Track) First() Point {
	return t.points[0]
}

func (t *Track) Last() Point {
	return t.points[len(t.points)-1]
}

// RoughMidPoint is the point at index len/2. It is a representative location
// for area lookups, not a geometric midpoint.
func (t *Track) RoughMidPoint() Point {
	return t.points[len(t.points)/2]
}

// Slice returns the sub-track of points [from, to], both inclusive.
func (t *Track) Slice(from, to int) (*Track, error) {
	if from < 0 || to >= len(t.points) || from > to {
		return nil, fmt.Errorf("invalid slice [%d, %d] of %d points", from, to, len(t.points))
	}
	return newTrack(t.points[from : to+1 : to+1])
}

// ClosestTo finds the point nearest to the given coordinates.
func (t *Track) ClosestTo(c geo.Coordinates) (Point, int) {
	return FindClosestPoint(t.points, c.Lat, c.Lon)
}

// FindClosestPoint scans points linearly and returns the one with the smallest
// great-circle distance to the target. Ties keep the first occurrence.
// The index is -1 when points is empty.
func FindClosestPoint(points []Point, targetLat, targetLon float64) (Point, int) {
	closestIdx := -1
	var closest Point
	minDistance := 0.0

	for i, p := range points {
		d := geo.DistanceMeters(p.Lat, p.Lon, targetLat, targetLon)
		if closestIdx == -1 || d < minDistance {
			minDistance = d
			closest = p
			closestIdx = i
		}
	}

	return closest, closestIdx
}
