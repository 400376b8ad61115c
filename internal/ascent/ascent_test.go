package ascent

import (
	"testing"
	"time"

	"github.com/planbiir/gpxascent/internal/track"
)

// outAndBack climbs north for two hours to a summit at index 4, then returns
// for two hours, with a dip on the way up and a bump on the way down.
func outAndBack(t *testing.T, elevations ...float64) *track.Track {
	t.Helper()
	start := time.Date(2025, 6, 14, 7, 0, 0, 0, time.UTC)
	points := make([]track.Point, len(elevations))
	for i, elev := range elevations {
		step := i
		if i > 4 {
			step = 8 - i
		}
		points[i] = track.Point{
			Lat:       46.0 + float64(step)*0.001,
			Lon:       7.0 + float64(i)*0.00001,
			Elevation: elev,
			Time:      start.Add(time.Duration(i) * 30 * time.Minute),
		}
	}
	tr, err := track.New(points)
	if err != nil {
		t.Fatalf("track.New failed: %v", err)
	}
	return tr
}

func summitTrack(t *testing.T, tr *track.Track, elevationFt float64) *track.PeakTrack {
	t.Helper()
	pt, err := track.NewPeakTrack(tr, track.Peak{
		ID:            42,
		Name:          "Test Peak",
		ElevationFeet: elevationFt,
		Coordinates:   tr.At(4).Coordinates(),
	})
	if err != nil {
		t.Fatalf("NewPeakTrack failed: %v", err)
	}
	if pt.ClosestIndex != 4 {
		t.Fatalf("Expected summit at index 4, got %d", pt.ClosestIndex)
	}
	return pt
}

func TestBuild(t *testing.T) {
	tr := outAndBack(t, 1000, 1030, 1015, 1045, 1060, 1040, 1020, 1035, 1000)
	f := Build(summitTrack(t, tr, 0))

	if f.PeakID != 42 || f.PeakName != "Test Peak" {
		t.Errorf("Unexpected peak identity: %d %q", f.PeakID, f.PeakName)
	}
	if f.Date != "2025-06-14" {
		t.Errorf("Expected date 2025-06-14, got %s", f.Date)
	}
	if f.StartFt != 3281 || f.EndFt != 3281 {
		t.Errorf("Expected start/end 3281 ft, got %d/%d", f.StartFt, f.EndFt)
	}
	// Summit falls back to the closest point: 60 m above the start.
	if f.NetGainFt != 197 {
		t.Errorf("Expected net gain 197 ft, got %d", f.NetGainFt)
	}
	// 75 m climbed on the way up, 15 m of it beyond the net gain.
	if f.ExtraUpFt != 49 {
		t.Errorf("Expected extra up 49 ft, got %d", f.ExtraUpFt)
	}
	if f.ExtraDownFt != 49 {
		t.Errorf("Expected extra down 49 ft, got %d", f.ExtraDownFt)
	}
	if f.UpMiles != "0.28" || f.DownMiles != "0.28" {
		t.Errorf("Expected 0.28 mi legs, got %s/%s", f.UpMiles, f.DownMiles)
	}
	want := track.Duration{Hours: 2}
	if f.UpDuration != want || f.DownDuration != want {
		t.Errorf("Expected 2h legs, got %+v/%+v", f.UpDuration, f.DownDuration)
	}
}

func TestBuildUsesPublishedSummitElevation(t *testing.T) {
	tr := outAndBack(t, 1000, 1030, 1015, 1045, 1060, 1040, 1020, 1035, 1000)
	f := Build(summitTrack(t, tr, 3500))

	if f.NetGainFt != 219 {
		t.Errorf("Expected net gain 219 ft, got %d", f.NetGainFt)
	}
	if f.ExtraUpFt != 27 {
		t.Errorf("Expected extra up 27 ft, got %d", f.ExtraUpFt)
	}
}

func TestBuildOmitsExtraGainOnSteadyClimb(t *testing.T) {
	tr := outAndBack(t, 1000, 1020, 1040, 1060, 1080, 1060, 1040, 1020, 1000)
	f := Build(summitTrack(t, tr, 0))

	if f.ExtraUpFt != 0 {
		t.Errorf("Expected no extra up, got %d", f.ExtraUpFt)
	}
	if f.ExtraDownFt != 0 {
		t.Errorf("Expected no extra down, got %d", f.ExtraDownFt)
	}

	for _, field := range f.Fields() {
		if field.ID == "ExUpFt" {
			t.Error("Expected ExUpFt to be omitted")
		}
	}
	if got := len(f.Fields()); got != 14 {
		t.Errorf("Expected 14 fields, got %d", got)
	}
}

func TestJournal(t *testing.T) {
	tr := outAndBack(t, 1000, 1030, 1015, 1045, 1060, 1040, 1020, 1035, 1000)

	want := "Total distance: 0.55 miles\n" +
		"Total elevation gain: 295 ft\n" +
		"Total elevation loss: 295 ft\n" +
		"Total duration: 0 days, 4 hours, 0 minutes"
	if got := Journal(tr); got != want {
		t.Errorf("Unexpected journal:\n%s\nexpected:\n%s", got, want)
	}
}

func TestFieldsOrder(t *testing.T) {
	tr := outAndBack(t, 1000, 1030, 1015, 1045, 1060, 1040, 1020, 1035, 1000)
	fields := Build(summitTrack(t, tr, 0)).Fields()

	wantIDs := []string{
		"DateText", "StartFt", "GainFt", "ExUpFt", "UpMi", "UpDay", "UpHr", "UpMin",
		"EndFt", "DnMi", "ExDnFt", "DnDay", "DnHr", "DnMin", "JournalText",
	}
	if len(fields) != len(wantIDs) {
		t.Fatalf("Expected %d fields, got %d", len(wantIDs), len(fields))
	}
	for i, id := range wantIDs {
		if fields[i].ID != id {
			t.Errorf("Field %d: expected %s, got %s", i, id, fields[i].ID)
		}
	}

	values := map[string]string{}
	for _, f := range fields {
		values[f.ID] = f.Value
	}
	checks := map[string]string{
		"DateText": "2025-06-14",
		"StartFt":  "3281",
		"GainFt":   "197",
		"ExUpFt":   "49",
		"UpHr":     "2",
		"UpMin":    "0",
		"DnMi":     "0.28",
	}
	for id, want := range checks {
		if values[id] != want {
			t.Errorf("%s: expected %q, got %q", id, want, values[id])
		}
	}
}
