package track

import "errors"

var (
	ErrEmptyTrack       = errors.New("no track points found in GPX file")
	ErrSingleTrackPoint = errors.New("GPX track has only one point; at least two are needed to measure distance and duration")

	// ErrMissingElevation is returned to the user verbatim, so it says how to fix the file.
	ErrMissingElevation = errors.New("GPX track is missing elevation data; add elevation to the file " +
		"(for example with an online elevation lookup service such as GPS Visualizer's \"add DEM elevation data\") and try again")
	ErrMissingTimestamp = errors.New("GPX track is missing timestamps; every track point needs a <time> value")

	ErrInvalidPeakCoordinates = errors.New("invalid peak coordinates")
)
