// Package gpx converts between GPX documents and track points.
//
// Parsing and encoding are delegated to gpxgo; this package only maps the
// document onto track.Record values and rebuilds documents from reduced points.
package gpx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	gogpx "github.com/tkrajina/gpxgo/gpx"

	"github.com/planbiir/gpxascent/internal/track"
)

// ErrNoTrackPoints matches track.ErrEmptyTrack with errors.Is.
var ErrNoTrackPoints = fmt.Errorf("no track points found in GPX file: %w", track.ErrEmptyTrack)

// Document wraps a parsed GPX file
type Document struct {
	gpx *gogpx.GPX
}

// Parse reads and parses a GPX file
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPX: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses an in-memory GPX document
func ParseBytes(data []byte) (*Document, error) {
	g, err := gogpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	doc := &Document{gpx: g}
	if doc.PointCount() == 0 {
		return nil, ErrNoTrackPoints
	}
	return doc, nil
}

// Creator returns the creator attribute
func (d *Document) Creator() string {
	return d.gpx.Creator
}

// PointCount counts track points across all tracks and segments
func (d *Document) PointCount() int {
	n := 0
	for _, trk := range d.gpx.Tracks {
		for _, seg := range trk.Segments {
			n += len(seg.Points)
		}
	}
	return n
}

// Records returns all track points from all tracks and segments in order.
// Missing elevations and timestamps are reported as nil.
func (d *Document) Records() []track.Record {
	records := make([]track.Record, 0, d.PointCount())

	for _, trk := range d.gpx.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				r := track.Record{Lat: p.Latitude, Lon: p.Longitude}
				if p.Elevation.NotNull() {
					ele := p.Elevation.Value()
					r.Elevation = &ele
				}
				if !p.Timestamp.IsZero() {
					ts := p.Timestamp
					r.Time = &ts
				}
				records = append(records, r)
			}
		}
	}

	return records
}

// Track validates the document's points and builds a track from them
func (d *Document) Track() (*track.Track, error) {
	return track.FromRecords(d.Records())
}

// RebuildFromPoints replaces all tracks with a single track holding points and
// marks the document as produced by creator
func (d *Document) RebuildFromPoints(points []track.Point, creator string) {
	name := ""
	if len(d.gpx.Tracks) > 0 {
		name = d.gpx.Tracks[0].Name
	}

	segment := gogpx.GPXTrackSegment{Points: make([]gogpx.GPXPoint, len(points))}
	for i, p := range points {
		pt := gogpx.GPXPoint{Timestamp: p.Time}
		pt.Latitude = p.Lat
		pt.Longitude = p.Lon
		pt.Elevation = *gogpx.NewNullableFloat64(p.Elevation)
		segment.Points[i] = pt
	}

	d.gpx.Tracks = []gogpx.GPXTrack{{
		Name:     name,
		Segments: []gogpx.GPXTrackSegment{segment},
	}}
	if creator != "" {
		d.gpx.Creator = creator
	}
}

// Bytes encodes the document as indented GPX 1.1
func (d *Document) Bytes() ([]byte, error) {
	data, err := d.gpx.ToXml(gogpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GPX: %w", err)
	}
	return data, nil
}

// Write saves the document to a file
func (d *Document) Write(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return d.WriteToWriter(file)
}

// WriteToWriter writes the document to an io.Writer
func (d *Document) WriteToWriter(w io.Writer) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// Stats returns basic structure counts
func (d *Document) Stats() (pointCount int, trackCount int, segmentCount int) {
	pointCount = d.PointCount()
	trackCount = len(d.gpx.Tracks)
	for _, trk := range d.gpx.Tracks {
		segmentCount += len(trk.Segments)
	}
	return
}
