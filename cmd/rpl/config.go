package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rplcalc/internal/settings"
)

// rplrcFile mirrors settings.Settings field-for-field (spec.md §6
// "Settings"), loaded from an optional rplrc.toml. Grounded on
// cmd/surge/project_manifest.go's projectConfig: a plain struct decoded
// with toml.DecodeFile, validated with meta.IsDefined rather than
// rejecting on every unset field, since unlike surge.toml's [run].main
// every one of these settings has a sane factory default (settings.Default).
type rplrcFile struct {
	Base           int    `toml:"base"`
	WordSize       uint32 `toml:"word_size"`
	AngleMode      string `toml:"angle_mode"`
	DisplayMode    string `toml:"display_mode"`
	Precision      int    `toml:"precision"`
	Capitalization string `toml:"capitalization"`
	GroupWidth     int    `toml:"group_width"`
	GroupSeparator string `toml:"group_separator"`
	MaxRewrites    int    `toml:"max_rewrites"`
	AutoSimplify   *bool  `toml:"auto_simplify"`
	PreferFraction *bool  `toml:"prefer_fraction"`
	PolarComplex   *bool  `toml:"polar_complex"`
}

var angleModes = map[string]settings.AngleMode{
	"degrees": settings.AngleDegrees, "radians": settings.AngleRadians,
	"grads": settings.AngleGrads, "pi_radians": settings.AnglePiRadians,
}

var displayModes = map[string]settings.DisplayMode{
	"standard": settings.DisplayStandard, "fixed": settings.DisplayFixed,
	"scientific": settings.DisplayScientific, "engineering": settings.DisplayEngineering,
	"significant": settings.DisplaySignificant,
}

var capModes = map[string]settings.Capitalization{
	"lower": settings.CapLower, "upper": settings.CapUpper,
	"capitalized": settings.CapCapitalized, "long_form": settings.CapLongForm,
}

// findRplrc searches startDir and its ancestors for an rplrc.toml, then
// $HOME for a .rplrc.toml (the same upward-walk findSurgeToml uses for
// surge.toml).
func findRplrc(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, "rplrc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".rplrc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// loadSettings resolves the active Settings: explicit path flag, then an
// upward search, falling back to settings.Default() with no error when
// nothing is found - an rplrc.toml is optional, unlike surge.toml's
// mandatory [run].main.
func loadSettings(explicitPath string) (settings.Settings, string, error) {
	path := explicitPath
	if path == "" {
		found, ok, err := findRplrc("")
		if err != nil {
			return settings.Settings{}, "", err
		}
		if !ok {
			return settings.Default(), "", nil
		}
		path = found
	}
	var f rplrcFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return settings.Settings{}, "", fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	set := settings.Default()
	applyRplrc(&set, f, meta)
	return set, path, nil
}

func applyRplrc(set *settings.Settings, f rplrcFile, meta toml.MetaData) {
	if meta.IsDefined("base") {
		set.Base = f.Base
	}
	if meta.IsDefined("word_size") {
		set.WordSize = f.WordSize
	}
	if meta.IsDefined("angle_mode") {
		if m, ok := angleModes[f.AngleMode]; ok {
			set.AngleMode = m
		}
	}
	if meta.IsDefined("display_mode") {
		if m, ok := displayModes[f.DisplayMode]; ok {
			set.DisplayMode = m
		}
	}
	if meta.IsDefined("precision") {
		set.Precision = f.Precision
	}
	if meta.IsDefined("capitalization") {
		if m, ok := capModes[f.Capitalization]; ok {
			set.Capitalization = m
		}
	}
	if meta.IsDefined("group_width") {
		set.GroupWidth = f.GroupWidth
	}
	if meta.IsDefined("group_separator") && len([]rune(f.GroupSeparator)) > 0 {
		set.GroupSeparator = []rune(f.GroupSeparator)[0]
	}
	if meta.IsDefined("max_rewrites") {
		set.MaxRewrites = f.MaxRewrites
	}
	if f.AutoSimplify != nil {
		set.AutoSimplify = *f.AutoSimplify
	}
	if f.PreferFraction != nil {
		set.PreferFraction = *f.PreferFraction
	}
	if f.PolarComplex != nil {
		set.PolarComplex = *f.PolarComplex
	}
}
