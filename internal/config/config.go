// Package config loads gpxascent settings from defaults, an optional config
// file and GPXASCENT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/planbiir/gpxascent/internal/peaks"
	"github.com/planbiir/gpxascent/internal/reduce"
)

// EnvPrefix is prepended to every environment override, e.g.
// GPXASCENT_REDUCE_MAX_POINTS.
const EnvPrefix = "GPXASCENT"

type Config struct {
	Reduce reduce.Config `mapstructure:"reduce"`
	Peaks  PeaksConfig   `mapstructure:"peaks"`
	Debug  bool          `mapstructure:"debug"`
}

type PeaksConfig struct {
	// Summits closer than this to the track count as climbed
	MaxDistanceFeet float64 `mapstructure:"max_distance_ft"`

	// Radius of the catalog query around the track midpoint
	SearchRadiusMeters float64 `mapstructure:"search_radius_m"`

	CacheSize int `mapstructure:"cache_size"`
}

// Options converts the peak settings for a peaks.Detector.
func (p PeaksConfig) Options() peaks.Options {
	return peaks.Options{
		MaxDistanceFeet: p.MaxDistanceFeet,
		CacheSize:       p.CacheSize,
	}
}

func Default() Config {
	opts := peaks.DefaultOptions()
	return Config{
		Reduce: reduce.DefaultConfig(),
		Peaks: PeaksConfig{
			MaxDistanceFeet:    opts.MaxDistanceFeet,
			SearchRadiusMeters: peaks.DefaultSearchRadiusMeters,
			CacheSize:          opts.CacheSize,
		},
	}
}

// Load reads path (YAML, TOML or JSON by extension) over the defaults, then
// applies environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("reduce.max_points", d.Reduce.MaxPoints)
	v.SetDefault("reduce.epsilon", d.Reduce.Epsilon)
	v.SetDefault("reduce.iterative_threshold", d.Reduce.IterativeThreshold)
	v.SetDefault("reduce.creator", d.Reduce.Creator)
	v.SetDefault("peaks.max_distance_ft", d.Peaks.MaxDistanceFeet)
	v.SetDefault("peaks.search_radius_m", d.Peaks.SearchRadiusMeters)
	v.SetDefault("peaks.cache_size", d.Peaks.CacheSize)
	v.SetDefault("debug", d.Debug)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := reduce.New(c.Reduce); err != nil {
		errs = append(errs, fmt.Errorf("reduce: %w", err))
	}
	if c.Peaks.MaxDistanceFeet <= 0 {
		errs = append(errs, fmt.Errorf("peaks: max_distance_ft must be positive, got %v", c.Peaks.MaxDistanceFeet))
	}
	if c.Peaks.SearchRadiusMeters <= 0 {
		errs = append(errs, fmt.Errorf("peaks: search_radius_m must be positive, got %v", c.Peaks.SearchRadiusMeters))
	}
	if c.Peaks.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("peaks: cache_size must not be negative, got %d", c.Peaks.CacheSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
