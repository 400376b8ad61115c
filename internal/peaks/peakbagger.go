package peaks

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

// ErrUnexpectedResponse is returned when a peak search response has no result root.
var ErrUnexpectedResponse = errors.New("unexpected results from peak search, try again later")

// pbResponse is the search response shape: <pb><r i n f a o r l/>...</pb>.
type pbResponse struct {
	XMLName xml.Name `xml:"pb"`
	Rows    []pbRow  `xml:"r"`
}

type pbRow struct {
	ID         string `xml:"i,attr"`
	Name       string `xml:"n,attr"`
	Feet       string `xml:"f,attr"`
	Lat        string `xml:"a,attr"`
	Lon        string `xml:"o,attr"`
	Prominence string `xml:"r,attr"`
	Location   string `xml:"l,attr"`
}

// ParsePeakbagger reads a peak search response into peaks, in response order.
func ParsePeakbagger(r io.Reader) ([]track.Peak, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read peak search response: %w", err)
	}
	var resp pbResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}

	peaks := make([]track.Peak, 0, len(resp.Rows))
	for i, row := range resp.Rows {
		peak, err := row.peak()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		peaks = append(peaks, peak)
	}
	return peaks, nil
}

func (row pbRow) peak() (track.Peak, error) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(row.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row.Lon), 64)
	c := geo.Coordinates{Lat: lat, Lon: lon}
	if latErr != nil || lonErr != nil || !c.Valid() {
		return track.Peak{}, fmt.Errorf("peak %q at (%s, %s): %w", row.Name, row.Lat, row.Lon, track.ErrInvalidPeakCoordinates)
	}

	return track.Peak{
		ID:            atoi(row.ID),
		Name:          row.Name,
		Coordinates:   c,
		ElevationFeet: float64(atoi(row.Feet)),
		Prominence:    atoi(row.Prominence),
		Location:      row.Location,
	}, nil
}

// atoi parses the leading integer of s, or 0.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
