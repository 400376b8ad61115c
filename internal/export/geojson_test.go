package export

import (
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

func testTrack(t *testing.T) *track.Track {
	t.Helper()
	start := time.Date(2025, 8, 2, 6, 0, 0, 0, time.UTC)
	elevations := []float64{1500, 1550, 1600, 1650, 1600, 1550, 1500}
	points := make([]track.Point, len(elevations))
	for i, elev := range elevations {
		points[i] = track.Point{
			Lat:       46.0 + float64(i)*0.002,
			Lon:       7.0,
			Elevation: elev,
			Time:      start.Add(time.Duration(i) * 20 * time.Minute),
		}
	}
	tr, err := track.New(points)
	if err != nil {
		t.Fatalf("track.New failed: %v", err)
	}
	return tr
}

func TestTrackFeature(t *testing.T) {
	tr := testTrack(t)
	f := Track(tr)

	ls, ok := f.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("Expected LineString geometry, got %T", f.Geometry)
	}
	if len(ls) != tr.Len() {
		t.Errorf("Expected %d coordinates, got %d", tr.Len(), len(ls))
	}
	// GeoJSON positions are lon, lat.
	if ls[0][0] != 7.0 || ls[0][1] != 46.0 {
		t.Errorf("Unexpected first position %v", ls[0])
	}

	if f.Properties.MustString(propertyRole) != RoleTrack {
		t.Errorf("Expected role %s, got %v", RoleTrack, f.Properties[propertyRole])
	}
	if f.Properties.MustString("start_date") != "2025-08-02" {
		t.Errorf("Unexpected start date %v", f.Properties["start_date"])
	}
	if f.Properties.MustFloat64("gain_ft") != tr.GainFeet() {
		t.Errorf("Expected gain %v, got %v", tr.GainFeet(), f.Properties["gain_ft"])
	}
}

func TestPeakTrackCollection(t *testing.T) {
	tr := testTrack(t)
	pt, err := track.NewPeakTrack(tr, track.Peak{
		ID:            9,
		Name:          "Export Peak",
		ElevationFeet: 5420,
		Coordinates:   geo.Coordinates{Lat: 46.0061, Lon: 7.0},
	})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}

	data, err := PeakTrack(pt).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("UnmarshalFeatureCollection failed: %v", err)
	}
	if len(fc.Features) != 4 {
		t.Fatalf("Expected 4 features, got %d", len(fc.Features))
	}

	roles := []string{RoleAscent, RoleDescent, RoleSummit, RoleClosest}
	for i, role := range roles {
		if got := fc.Features[i].Properties.MustString(propertyRole); got != role {
			t.Errorf("Feature %d: expected role %s, got %s", i, role, got)
		}
	}

	up := fc.Features[0].Geometry.(orb.LineString)
	down := fc.Features[1].Geometry.(orb.LineString)
	if len(up)+len(down) != tr.Len()+1 {
		t.Errorf("Expected leg coordinates to sum to %d, got %d", tr.Len()+1, len(up)+len(down))
	}
	if up[len(up)-1] != down[0] {
		t.Error("Expected legs to share the closest point")
	}

	descent := fc.Features[1]
	if got := descent.Properties.MustFloat64("extra_gain_ft"); got != pt.FromPeak.GainFeet() {
		t.Errorf("Expected descent extra gain %v, got %v", pt.FromPeak.GainFeet(), got)
	}

	summit := fc.Features[2]
	if summit.Properties.MustString("name") != "Export Peak" {
		t.Errorf("Unexpected summit name %v", summit.Properties["name"])
	}
	if summit.Properties.MustFloat64("elevation_ft") != 5420 {
		t.Errorf("Unexpected summit elevation %v", summit.Properties["elevation_ft"])
	}

	closest := fc.Features[3]
	if closest.Properties.MustInt("index") != 3 {
		t.Errorf("Expected closest index 3, got %v", closest.Properties["index"])
	}
	if closest.Properties.MustFloat64("distance_ft") <= 0 {
		t.Error("Expected positive distance to the summit")
	}
}

func TestDescentExtraGainIsNeverNegative(t *testing.T) {
	start := time.Date(2025, 8, 2, 6, 0, 0, 0, time.UTC)
	elevations := []float64{1000, 1200, 1400, 1600, 1400, 1200, 1000}
	points := make([]track.Point, len(elevations))
	for i, elev := range elevations {
		step := i
		if i > 3 {
			step = 6 - i
		}
		points[i] = track.Point{
			Lat:       46.0 + float64(step)*0.002,
			Lon:       7.0 + float64(i)*0.0001,
			Elevation: elev,
			Time:      start.Add(time.Duration(i) * 20 * time.Minute),
		}
	}
	tr, err := track.New(points)
	if err != nil {
		t.Fatalf("track.New failed: %v", err)
	}
	pt, err := track.NewPeakTrack(tr, track.Peak{Coordinates: tr.At(3).Coordinates()})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}

	fc := PeakTrack(pt)
	if got := fc.Features[1].Properties.MustFloat64("extra_gain_ft"); got != 0 {
		t.Errorf("Expected no extra gain on a steady descent, got %v", got)
	}
	if got := fc.Features[0].Properties.MustFloat64("extra_gain_ft"); math.Abs(got) > 1e-6 {
		t.Errorf("Expected no extra gain on a steady ascent, got %v", got)
	}
}
