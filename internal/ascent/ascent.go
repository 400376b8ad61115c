// Package ascent turns a peak-relative track into the values of an ascent
// report form.
package ascent

import (
	"fmt"
	"math"
	"strconv"

	"github.com/planbiir/gpxascent/internal/geo"
	"github.com/planbiir/gpxascent/internal/track"
)

// Form holds the values of one ascent report. Feet are rounded to the nearest
// foot and miles are two-decimal strings.
type Form struct {
	PeakID   int    `json:"peak_id,omitempty"`
	PeakName string `json:"peak_name,omitempty"`
	Date     string `json:"date"`

	StartFt    int            `json:"start_ft"`
	NetGainFt  int            `json:"net_gain_ft"`
	ExtraUpFt  int            `json:"extra_up_ft,omitempty"`
	UpMiles    string         `json:"up_miles"`
	UpDuration track.Duration `json:"up_duration"`

	EndFt        int            `json:"end_ft"`
	DownMiles    string         `json:"down_miles"`
	ExtraDownFt  int            `json:"extra_down_ft"`
	DownDuration track.Duration `json:"down_duration"`

	Journal string `json:"journal"`
}

// Field is one form input, identified by its element id.
type Field struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Build computes the form values for pt.
func Build(pt *track.PeakTrack) Form {
	up, down := pt.ToPeak, pt.FromPeak

	f := Form{
		PeakID:       pt.Peak.ID,
		PeakName:     pt.Peak.Name,
		Date:         pt.StartDate(),
		StartFt:      roundFeet(pt.StartElevationFeet()),
		NetGainFt:    roundFeet(up.NetGainFeet),
		UpMiles:      geo.RoundMiles(up.DistanceMiles()),
		UpDuration:   up.Duration(),
		EndFt:        roundFeet(pt.EndElevationFeet()),
		DownMiles:    geo.RoundMiles(down.DistanceMiles()),
		ExtraDownFt:  roundFeet(down.GainFeet()),
		DownDuration: down.Duration(),
		Journal:      Journal(pt.Track),
	}

	// The form splits ascent gain into net and extra; only report extra when
	// the climb undulated above the net gain.
	if extra := up.ExtraGainFeet(); extra > 0 {
		f.ExtraUpFt = roundFeet(extra)
	}
	return f
}

// Journal summarizes the whole track for the report's free text.
func Journal(t *track.Track) string {
	d := t.Duration()
	return fmt.Sprintf("Total distance: %s miles\n"+
		"Total elevation gain: %d ft\n"+
		"Total elevation loss: %d ft\n"+
		"Total duration: %d days, %d hours, %d minutes",
		geo.RoundMiles(t.DistanceMiles()), roundFeet(t.GainFeet()), roundFeet(t.LossFeet()),
		d.Days, d.Hours, d.Minutes)
}

// Fields returns the form inputs in fill order. ExUpFt is omitted when there
// is no extra ascent gain.
func (f Form) Fields() []Field {
	fields := []Field{
		{"DateText", f.Date},
		{"StartFt", strconv.Itoa(f.StartFt)},
		{"GainFt", strconv.Itoa(f.NetGainFt)},
	}
	if f.ExtraUpFt > 0 {
		fields = append(fields, Field{"ExUpFt", strconv.Itoa(f.ExtraUpFt)})
	}
	fields = append(fields,
		Field{"UpMi", f.UpMiles},
		Field{"UpDay", strconv.Itoa(f.UpDuration.Days)},
		Field{"UpHr", strconv.Itoa(f.UpDuration.Hours)},
		Field{"UpMin", strconv.Itoa(f.UpDuration.Minutes)},
		Field{"EndFt", strconv.Itoa(f.EndFt)},
		Field{"DnMi", f.DownMiles},
		Field{"ExDnFt", strconv.Itoa(f.ExtraDownFt)},
		Field{"DnDay", strconv.Itoa(f.DownDuration.Days)},
		Field{"DnHr", strconv.Itoa(f.DownDuration.Hours)},
		Field{"DnMin", strconv.Itoa(f.DownDuration.Minutes)},
		Field{"JournalText", f.Journal},
	)
	return fields
}

func roundFeet(ft float64) int {
	return int(math.Round(ft))
}
