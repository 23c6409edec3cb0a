package bitpart

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest is a reproducibility record handed back from Build/BuildParallel:
// the build ID, the parameters actually used, and (if a randomised
// reference-point selector was configured) the seed it drew from. bitpart
// never writes this anywhere itself — design notes §9 calls for the seed to
// be "emitted alongside the index"; what the caller does with it (log it,
// persist it, discard it) is up to them.
type Manifest struct {
	BuildID          uuid.UUID `yaml:"build_id"`
	DatasetSize      int       `yaml:"dataset_size"`
	MeanDistance     float64   `yaml:"mean_distance"`
	RadiusIncrement  float64   `yaml:"radius_increment"`
	FourPoint        bool      `yaml:"four_point"`
	RefPoints        int       `yaml:"ref_points"`
	Exclusions       int       `yaml:"exclusions"`
	RefSelectionSeed *uint64   `yaml:"ref_selection_seed,omitempty"`
}

// ToYAML marshals the manifest. Named to avoid colliding with yaml.Marshaler's
// MarshalYAML() (any, error) contract — this is a convenience wrapper for
// callers, not an interface implementation.
func (m Manifest) ToYAML() ([]byte, error) {
	return yaml.Marshal(m)
}
