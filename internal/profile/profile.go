// Package profile ships a small set of named, compiled-in tuning presets for
// Builder's mean_distance/radius_increment parameters, addressing spec.md's
// Open Question on defensible defaults across scales by making the choice
// explicit and named instead of a single silently hard-coded pair.
//
// Profiles are embedded at compile time (go:embed) and parsed once at
// package init — this is not the "on-disk persistence" spec.md excludes from
// the core's scope, since nothing here is written by bitpart; it is a
// read-only, compiled-in reference table, the same way the teacher's
// internal/config package decodes YAML it owns.
package profile

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Profile is a named mean_distance/radius_increment pair.
type Profile struct {
	Name            string  `yaml:"name"`
	Description     string  `yaml:"description"`
	MeanDistance    float64 `yaml:"mean_distance"`
	RadiusIncrement float64 `yaml:"radius_increment"`
}

var byName map[string]Profile

func init() {
	var profiles []Profile
	if err := yaml.Unmarshal(profilesYAML, &profiles); err != nil {
		panic(fmt.Sprintf("profile: malformed embedded profiles.yaml: %v", err))
	}
	byName = make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		byName[p.Name] = p
	}
}

// Default is the profile Builder uses when no profile is explicitly
// selected: unit-scale Euclidean, matching the historical 1.81/0.3 defaults.
const Default = "euclidean-unit"

// Lookup returns the named profile and whether it was found.
func Lookup(name string) (Profile, bool) {
	p, ok := byName[name]
	return p, ok
}

// Names returns the names of all known profiles.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	return names
}
