package swing

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// DefaultMinClearance is the smallest swing height above the liftoff position, used when the
// terrain height range is flatter than this.
const DefaultMinClearance = 0.1

// Config controls how swing trajectories are generated.
type Config struct {
	// MinClearance is the lower bound on how far above the liftoff height the swing apex sits.
	// Unset means DefaultMinClearance.
	MinClearance *float64 `json:"min_clearance,omitempty"`
	// NormalizeTime fits each transition on [0, 1] local time instead of absolute time.
	NormalizeTime bool `json:"normalize_time"`
	// Parallel fits end effectors concurrently.
	Parallel bool `json:"parallel"`
	// CheckContinuity logs a warning when consecutive swing segments do not meet.
	CheckContinuity bool `json:"check_continuity"`
}

// DefaultConfig returns a config with the default minimum clearance and everything else off.
func DefaultConfig() Config {
	return Config{}
}

// Clearance returns the configured minimum clearance, or DefaultMinClearance when it is unset.
func (cfg *Config) Clearance() float64 {
	if cfg.MinClearance == nil {
		return DefaultMinClearance
	}
	return *cfg.MinClearance
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.MinClearance == nil {
		return nil
	}
	clearance := *cfg.MinClearance
	if math.IsNaN(clearance) || math.IsInf(clearance, 0) {
		return errors.Errorf("%s: min_clearance must be finite, got %v", fieldPath(path), clearance)
	}
	if clearance < 0 {
		return errors.Errorf("%s: min_clearance must be non-negative, got %v", fieldPath(path), clearance)
	}
	return nil
}

func fieldPath(path string) string {
	if path == "" {
		return "swing config"
	}
	return path
}

// ConfigFromAttributes decodes a config from a loosely typed attribute map, such as one parsed
// from a robot configuration file. Keys that are not present keep their default values and
// unknown keys are rejected.
func ConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	conf := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "decoding swing config")
	}
	if err := conf.Validate(""); err != nil {
		return nil, err
	}
	return &conf, nil
}
