package reduce

import (
	"errors"
	"time"

	"github.com/planbiir/gpxascent/internal/track"
)

var (
	ErrInvalidTarget  = errors.New("max points must be at least 2")
	ErrInvalidEpsilon = errors.New("epsilon must not be negative")
)

// Config holds simplification parameters
type Config struct {
	// Upload limit of the destination system
	MaxPoints int `mapstructure:"max_points"`

	// RDP tolerance, compared against the haversine distance (meters) between
	// a point and its projection onto the chord in degree space
	Epsilon float64 `mapstructure:"epsilon"`

	// Inputs longer than this use the stack-based RDP instead of recursion
	IterativeThreshold int `mapstructure:"iterative_threshold"`

	// Creator attribute written into reduced GPX documents
	Creator string `mapstructure:"creator"`
}

// DefaultConfig returns the limits of the ascent upload form
func DefaultConfig() Config {
	return Config{
		MaxPoints:          3000,
		Epsilon:            0.00001,
		IterativeThreshold: 10000,
		Creator:            "gpxascent (reduced)",
	}
}

// Stats describes a reduction
type Stats struct {
	OriginalPoints int           `json:"original_points"`
	RDPPoints      int           `json:"rdp_points"`
	FinalPoints    int           `json:"final_points"`
	PointsRemoved  int           `json:"points_removed"`
	PointsPercent  float64       `json:"points_removed_percent"`
	StrideApplied  bool          `json:"stride_applied"`
	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// Result contains the reduced track and statistics.
// When Reduced is false, Track is the input track itself.
type Result struct {
	Track   *track.Track
	Reduced bool
	Stats   Stats
}
