// Package export renders tracks as GeoJSON.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/planbiir/gpxascent/internal/track"
)

// Feature roles of a peak track export.
const (
	RoleTrack    = "track"
	RoleAscent   = "ascent"
	RoleDescent  = "descent"
	RoleSummit   = "summit"
	RoleClosest  = "closest"
	propertyRole = "role"
)

// Track renders t as a LineString feature carrying its metrics.
func Track(t *track.Track) *geojson.Feature {
	f := lineFeature(t, t.Metrics())
	f.Properties[propertyRole] = RoleTrack
	f.Properties["start_date"] = t.StartDate()
	return f
}

// PeakTrack renders the ascent and descent legs, the summit and the closest
// track point as a FeatureCollection.
func PeakTrack(pt *track.PeakTrack) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	up := lineFeature(pt.ToPeak.Track, pt.ToPeak.Metrics())
	up.Properties[propertyRole] = RoleAscent
	up.Properties["extra_gain_ft"] = pt.ToPeak.ExtraGainFeet()
	fc.Append(up)

	down := lineFeature(pt.FromPeak.Track, pt.FromPeak.Metrics())
	down.Properties[propertyRole] = RoleDescent
	// Descending, any climbing at all is extra.
	down.Properties["extra_gain_ft"] = pt.FromPeak.GainFeet()
	fc.Append(down)

	summit := geojson.NewFeature(pt.Peak.Coordinates.OrbPoint())
	summit.Properties[propertyRole] = RoleSummit
	if pt.Peak.ID != 0 {
		summit.Properties["id"] = pt.Peak.ID
	}
	if pt.Peak.Name != "" {
		summit.Properties["name"] = pt.Peak.Name
	}
	if pt.Peak.Location != "" {
		summit.Properties["location"] = pt.Peak.Location
	}
	summit.Properties["elevation_ft"] = pt.SummitElevationFeet()
	fc.Append(summit)

	closest := geojson.NewFeature(pt.ClosestPoint.Coordinates().OrbPoint())
	closest.Properties[propertyRole] = RoleClosest
	closest.Properties["index"] = pt.ClosestIndex
	closest.Properties["distance_ft"] = pt.ClosestDistanceFeet
	closest.Properties["time"] = pt.ClosestPoint.Time
	fc.Append(closest)

	return fc
}

func lineFeature(t *track.Track, m track.Metrics) *geojson.Feature {
	ls := make(orb.LineString, 0, t.Len())
	for _, p := range t.Points() {
		ls = append(ls, p.Coordinates().OrbPoint())
	}

	f := geojson.NewFeature(ls)
	f.Properties["points"] = m.Points
	f.Properties["miles"] = m.Miles
	f.Properties["gain_ft"] = m.GainFeet
	f.Properties["loss_ft"] = m.LossFeet
	f.Properties["net_gain_ft"] = m.NetGainFeet
	f.Properties["duration"] = m.Duration
	return f
}
