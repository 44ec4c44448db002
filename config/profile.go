// ABOUTME: YAML workload profiles and tuning overrides
// ABOUTME: Profiles name a workload plus resources; tuning files override model coefficients

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/markalston/graphite-capacity-planner/models"
	"github.com/markalston/graphite-capacity-planner/services"
)

// Profile is a saved estimation input.
type Profile struct {
	Name      string                `yaml:"name" json:"name"`
	Workload  models.WorkloadParams `yaml:"workload" json:"workload"`
	Resources models.UserResources  `yaml:"resources" json:"resources"`
}

// ParseProfileYAML parses a Profile from YAML bytes. Unknown keys are
// rejected so misspelled fields do not silently fall back to defaults.
func ParseProfileYAML(data []byte) (*Profile, error) {
	var p Profile
	if err := decodeStrict(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile yaml: %w", err)
	}
	return &p, nil
}

// LoadProfile reads and parses a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p, err := ParseProfileYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseTuningYAML decodes overrides on top of the default coefficients and
// validates the result.
func ParseTuningYAML(data []byte) (services.Tuning, error) {
	tuning := services.DefaultTuning()
	if err := decodeStrict(data, &tuning); err != nil {
		return services.Tuning{}, fmt.Errorf("failed to parse tuning yaml: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return services.Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return tuning, nil
}

// LoadTuning returns the default coefficients when path is empty, otherwise
// the defaults overridden by the file.
func LoadTuning(path string) (services.Tuning, error) {
	if path == "" {
		return services.DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return services.Tuning{}, fmt.Errorf("reading tuning file: %w", err)
	}
	tuning, err := ParseTuningYAML(data)
	if err != nil {
		return services.Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return tuning, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves out untouched
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
