package ambient

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// ErrUnknownPreset is returned by Preset for names that are not built in.
var ErrUnknownPreset = errors.New("unknown preset")

//go:embed presets/*.yaml
var presetFS embed.FS

const presetDir = "presets"

// PresetNames lists the built-in profiles in sorted order.
func PresetNames() []string {
	entries, err := fs.ReadDir(presetFS, presetDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != extYAML {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), extYAML))
	}
	slices.Sort(names)
	return names
}

// Preset returns a fresh copy of the built-in profile name.
func Preset(name string) (*Profile, error) {
	names := PresetNames()
	if !slices.Contains(names, name) {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
	}

	data, err := presetFS.ReadFile(path.Join(presetDir, name+extYAML))
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}

	p, err := ParseProfile(data, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
