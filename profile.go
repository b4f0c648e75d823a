package ambient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-ambient/internal/engine"
)

// ErrInvalidProfile indicates a profile document that cannot be used.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile describes one ambient sound: the operator steps to fold over the
// signal and the peak level of the result.
type Profile struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Level is the target peak. Nil means DefaultLevel.
	Level *float64 `json:"level,omitempty" yaml:"level,omitempty"`

	// Pipeline holds step strings such as "filter_lp:cut=500,gain=0.5".
	Pipeline []string `json:"pipeline" yaml:"pipeline"`

	// Ops is the legacy name of Pipeline. It is only read when Pipeline is
	// absent and is cleared once merged.
	Ops []string `json:"ops,omitempty" yaml:"ops,omitempty"`
}

// Format identifies a profile encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extJSON:
		return FormatJSON, nil
	case extYAML, extYML:
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: unsupported file extension %q", ErrInvalidProfile, filepath.Ext(path))
	}
}

// ParseProfile decodes a profile document and validates its level. Unknown
// keys are rejected. Steps are checked when the profile is run, or by
// Validate.
func ParseProfile(data []byte, format Format) (*Profile, error) {
	var p Profile

	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty YAML document is an empty profile.
		if err = dec.Decode(&p); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %v", ErrInvalidProfile, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	if p.Pipeline == nil && p.Ops != nil {
		p.Pipeline = p.Ops
	}
	p.Ops = nil

	if err := p.checkLevel(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfile reads a JSON or YAML profile from path. A profile without a
// name is named after the file.
func LoadProfile(path string) (*Profile, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p, err := ParseProfile(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// EffectiveLevel returns the profile level or DefaultLevel.
func (p *Profile) EffectiveLevel() float64 {
	if p.Level == nil {
		return DefaultLevel
	}
	return *p.Level
}

// Validate checks the level and that every step parses and names a
// registered operator, without rendering anything.
func (p *Profile) Validate(opts ...Option) error {
	if err := p.checkLevel(); err != nil {
		return err
	}
	o := collectOptions(opts)
	_, err := engine.Compile(p.Pipeline, o.registry)
	return err
}

func (p *Profile) checkLevel() error {
	if p.Level == nil {
		return nil
	}
	if l := *p.Level; math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
		return fmt.Errorf("%w: level %v", ErrInvalidProfile, l)
	}
	return nil
}
