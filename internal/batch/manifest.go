package batch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest indicates a manifest that cannot be rendered.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes a set of renders.
type Manifest struct {
	// Parallel bounds concurrent renders. Zero means DefaultParallel.
	Parallel int `yaml:"parallel,omitempty"`

	// Overwrite re-renders jobs whose output already exists.
	Overwrite bool `yaml:"overwrite,omitempty"`

	// OutDir is where outputs with relative paths are written.
	OutDir string `yaml:"out_dir,omitempty"`

	Jobs []Job `yaml:"jobs"`
}

// Job renders one profile file or preset to one WAV file.
type Job struct {
	Name    string   `yaml:"name"`
	Profile string   `yaml:"profile,omitempty"` // profile file path
	Preset  string   `yaml:"preset,omitempty"`  // built-in preset name
	Minutes float64  `yaml:"minutes"`
	Seed    *int64   `yaml:"seed,omitempty"`
	Level   *float64 `yaml:"level,omitempty"`
	Out     string   `yaml:"out,omitempty"` // defaults to <name>.wav
}

// OutputName returns the configured output file or <name>.wav.
func (j Job) OutputName() string {
	if j.Out != "" {
		return j.Out
	}
	return j.Name + wavExt
}

// ParseManifest decodes a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads a manifest file. Relative profile paths and OutDir are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	m.OutDir = resolve(base, m.OutDir)
	for i := range m.Jobs {
		if m.Jobs[i].Profile != "" {
			m.Jobs[i].Profile = resolve(base, m.Jobs[i].Profile)
		}
	}
	return m, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks every job and that names and outputs are unique.
func (m *Manifest) Validate() error {
	if m.Parallel < 0 {
		return fmt.Errorf("%w: parallel %d", ErrInvalidManifest, m.Parallel)
	}
	if len(m.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidManifest)
	}

	names := make(map[string]bool, len(m.Jobs))
	outputs := make(map[string]string, len(m.Jobs))
	for i, j := range m.Jobs {
		if err := j.validate(); err != nil {
			return fmt.Errorf("%w: job %d: %w", ErrInvalidManifest, i, err)
		}
		if names[j.Name] {
			return fmt.Errorf("%w: duplicate job name %q", ErrInvalidManifest, j.Name)
		}
		names[j.Name] = true

		out := filepath.Clean(j.OutputName())
		if other, ok := outputs[out]; ok {
			return fmt.Errorf("%w: jobs %q and %q both write %s", ErrInvalidManifest, other, j.Name, out)
		}
		outputs[out] = j.Name
	}
	return nil
}

func (j Job) validate() error {
	switch {
	case j.Name == "":
		return errors.New("missing name")
	case j.Profile == "" && j.Preset == "":
		return fmt.Errorf("%s: one of profile or preset is required", j.Name)
	case j.Profile != "" && j.Preset != "":
		return fmt.Errorf("%s: profile and preset are mutually exclusive", j.Name)
	case j.Minutes <= 0:
		return fmt.Errorf("%s: minutes must be positive", j.Name)
	}
	return nil
}
