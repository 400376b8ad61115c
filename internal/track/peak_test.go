package track

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/planbiir/gpxascent/internal/geo"
)

// outAndBack climbs from 1000m to 1600m over five points and returns.
func outAndBack(t *testing.T) *Track {
	t.Helper()
	lats := []float64{46.00, 46.01, 46.02, 46.03, 46.04, 46.03, 46.02, 46.01, 46.00}
	eles := []float64{1000, 1150, 1300, 1450, 1600, 1450, 1300, 1150, 1000}
	points := make([]Point, len(lats))
	for i := range lats {
		points[i] = Point{
			Lat:       lats[i],
			Lon:       7.0 + float64(i)*0.0001,
			Elevation: eles[i],
			Time:      baseTime.Add(time.Duration(i) * 20 * time.Minute),
		}
	}
	tr, err := New(points)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func TestNewPeakTrackSplitsAtSummit(t *testing.T) {
	tr := outAndBack(t)
	summit := Peak{ID: 42, Name: "Test Peak", Coordinates: geo.Coordinates{Lat: 46.0401, Lon: 7.0004}, ElevationFeet: 5300}

	pt, err := NewPeakTrack(tr, summit)
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}

	if pt.ClosestIndex != 4 {
		t.Fatalf("Expected closest index 4, got %d", pt.ClosestIndex)
	}
	if pt.ToPeak.Len()+pt.FromPeak.Len() != tr.Len()+1 {
		t.Errorf("Expected leg lengths to sum to %d, got %d + %d",
			tr.Len()+1, pt.ToPeak.Len(), pt.FromPeak.Len())
	}
	if pt.ToPeak.Last() != pt.ClosestPoint || pt.FromPeak.First() != pt.ClosestPoint {
		t.Errorf("Closest point should be shared by both legs")
	}

	if pt.ClosestDistanceFeet <= 0 || pt.ClosestDistanceFeet > 100 {
		t.Errorf("Expected a small positive distance to summit, got %.1f ft", pt.ClosestDistanceFeet)
	}

	wantUpNet := 5300 - geo.MetersToFeet(1000)
	if math.Abs(pt.ToPeak.NetGainFeet-wantUpNet) > 1e-9 {
		t.Errorf("Expected ascent net gain %.2f, got %.2f", wantUpNet, pt.ToPeak.NetGainFeet)
	}
	wantDownNet := 5300 - geo.MetersToFeet(1000)
	if math.Abs(pt.FromPeak.NetGainFeet-wantDownNet) > 1e-9 {
		t.Errorf("Expected descent net drop %.2f, got %.2f", wantDownNet, pt.FromPeak.NetGainFeet)
	}

	if pt.ToPeak.Duration() != (Duration{Hours: 1, Minutes: 20}) {
		t.Errorf("Expected 1h20m ascent, got %+v", pt.ToPeak.Duration())
	}
	if pt.FromPeak.LossFeet() <= 0 || pt.FromPeak.GainFeet() != 0 {
		t.Errorf("Expected pure descent, got gain %.1f loss %.1f", pt.FromPeak.GainFeet(), pt.FromPeak.LossFeet())
	}
}

func TestLegExtraGain(t *testing.T) {
	tr := outAndBack(t)
	pt, err := NewPeakTrack(tr, Peak{Coordinates: geo.Coordinates{Lat: 46.04, Lon: 7.0004}})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}

	// No published elevation: the summit is the closest point itself.
	if pt.SummitElevationFeet() != geo.MetersToFeet(1600) {
		t.Errorf("Expected summit fallback to closest point, got %.2f", pt.SummitElevationFeet())
	}
	if math.Abs(pt.ToPeak.ExtraGainFeet()) > 1e-9 {
		t.Errorf("Expected no extra gain on a steady climb, got %.4f", pt.ToPeak.ExtraGainFeet())
	}
	if m := pt.ToPeak.Metrics(); m.NetGainFeet != pt.ToPeak.NetGainFeet {
		t.Errorf("Leg metrics should report summit-relative net gain")
	}
}

func TestNewPeakTrackWidensAtEnds(t *testing.T) {
	tr := outAndBack(t)

	atStart, err := NewPeakTrack(tr, Peak{Coordinates: geo.Coordinates{Lat: 45.9, Lon: 7.0}})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}
	if atStart.ClosestIndex != 0 {
		t.Fatalf("Expected closest index 0, got %d", atStart.ClosestIndex)
	}
	if atStart.ToPeak.Len() != 2 {
		t.Errorf("Expected widened ascent of 2 points, got %d", atStart.ToPeak.Len())
	}
	if atStart.FromPeak.Len() != tr.Len() {
		t.Errorf("Expected descent over whole track, got %d", atStart.FromPeak.Len())
	}

	// The last point (46.00, 7.0008) is nearer than the first (46.00, 7.0) to this target.
	atEnd, err := NewPeakTrack(tr, Peak{Coordinates: geo.Coordinates{Lat: 45.999, Lon: 7.0010}})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}
	if atEnd.ClosestIndex != tr.Len()-1 {
		t.Fatalf("Expected closest index %d, got %d", tr.Len()-1, atEnd.ClosestIndex)
	}
	if atEnd.FromPeak.Len() != 2 {
		t.Errorf("Expected widened descent of 2 points, got %d", atEnd.FromPeak.Len())
	}
	if atEnd.ToPeak.Len() != tr.Len() {
		t.Errorf("Expected ascent over whole track, got %d", atEnd.ToPeak.Len())
	}
}

func TestNewPeakTrackTwoPoints(t *testing.T) {
	tr := buildTrack(t, 1000, 1100)

	pt, err := NewPeakTrack(tr, Peak{Coordinates: geo.Coordinates{Lat: 46.0, Lon: 7.0}})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}
	if pt.ToPeak.Len() != 2 || pt.FromPeak.Len() != 2 {
		t.Errorf("Expected both legs to span the two points, got %d and %d", pt.ToPeak.Len(), pt.FromPeak.Len())
	}
}

func TestNewPeakTrackInvalidCoordinates(t *testing.T) {
	tr := outAndBack(t)

	_, err := NewPeakTrack(tr, Peak{Coordinates: geo.Coordinates{Lat: math.NaN(), Lon: 7}})
	if !errors.Is(err, ErrInvalidPeakCoordinates) {
		t.Errorf("Expected ErrInvalidPeakCoordinates, got %v", err)
	}

	if _, err := NewPeakTrack(nil, Peak{}); !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("Expected ErrEmptyTrack for nil track, got %v", err)
	}
}

func TestLegCountsSumForInteriorPeaks(t *testing.T) {
	tr := outAndBack(t)
	points := tr.Points()

	for i := 1; i < len(points)-1; i++ {
		pt, err := NewPeakTrack(tr, Peak{Coordinates: points[i].Coordinates()})
		if err != nil {
			t.Fatalf("NewPeakTrack failed: %v", err)
		}
		if pt.ToPeak.Len()+pt.FromPeak.Len() != tr.Len()+1 {
			t.Errorf("Peak at %d: expected %d points across legs, got %d",
				i, tr.Len()+1, pt.ToPeak.Len()+pt.FromPeak.Len())
		}
	}
}
