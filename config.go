/*
 * config.go, part of orbitraj.
 *
 * Copyright 2024 The orbitraj Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package orbitraj

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Mask kinds.
const (
	MaskGradient = "gradient"
	MaskVolume   = "volume"
)

// Policies for the smoothing of a set of volumes when a volume has no region, or
// its region is already at the requested step.
const (
	//Abandon the whole set. This is what the first versions of orbitraj did.
	ShortCircuitBatch = "batch"
	//Skip only that volume.
	ShortCircuitVolume = "volume"
)

// MultiwfnExtensions are the extensions of the files that Multiwfn can turn into cube files.
var MultiwfnExtensions = []string{".wfn", ".wfx", ".fch", ".molden", ".gms",
	".31", ".32", ".33", ".34", ".35", ".36", ".37", ".38", ".39", ".40"}

// MultiwfnConfig sets how Multiwfn is invoked.
type MultiwfnConfig struct {
	//The Multiwfn executable. Empty means ${Multiwfnpath}/Multiwfn, or Multiwfn in the $PATH.
	Command string `toml:"command"`
	//Menu selections fed to Multiwfn, separated by spaces.
	Script string `toml:"script"`
	//The fixed name of the file Multiwfn writes.
	Output     string   `toml:"output"`
	Extensions []string `toml:"extensions"`
}

// Config holds the defaults used by orbitraj components.
type Config struct {
	//Upper isosurface level.
	IsoLevel float64 `toml:"isolevel"`
	//Palette name used to color surfaces.
	Palette string `toml:"palette"`
	//Color used when volumes are colored with a single color.
	RGBA RGBA `toml:"rgba"`
	//Alpha applied to the palette when volumes are loaded.
	LoadAlpha float64 `toml:"load_alpha"`
	//Mask used to color the volumes, MaskGradient or MaskVolume.
	MaskKind string `toml:"mask"`
	//Model ids for the volumes start at this value.
	ModelIDBase int `toml:"model_id_base"`
	//Smoothing step applied by default.
	SmoothStep int `toml:"smooth_step"`
	//ShortCircuitBatch or ShortCircuitVolume.
	SmoothShortCircuit string         `toml:"smooth_short_circuit"`
	Multiwfn           MultiwfnConfig `toml:"multiwfn"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		IsoLevel:           0.88,
		Palette:            "rainbow",
		RGBA:               RGBA{0.7, 0.7, 0.7, 0.5},
		LoadAlpha:          0.6,
		MaskKind:           MaskGradient,
		ModelIDBase:        1000,
		SmoothStep:         1,
		SmoothShortCircuit: ShortCircuitBatch,
		Multiwfn: MultiwfnConfig{
			Script:     "5 9 2 2",
			Output:     "ELF.cub",
			Extensions: append([]string(nil), MultiwfnExtensions...),
		},
	}
}

// LoadConfig reads a TOML configuration file. Fields not present in the file
// keep their default values. A missing file is not an error, the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	C := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			Logf("orbitraj.LoadConfig: %s not found, using the defaults", path)
			return C, nil
		}
		return nil, fmt.Errorf("orbitraj.LoadConfig: failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, C); err != nil {
		return nil, NewError(ErrValidation, "can't parse configuration: "+err.Error(), path, "LoadConfig")
	}
	if err := C.Validate(); err != nil {
		return nil, ErrDecorate(err, "LoadConfig")
	}
	return C, nil
}

// ValidStep returns true if step is an allowed smoothing step.
func ValidStep(step int) bool {
	return step == 1 || step == 2 || step == 4 || step == 8
}

// Validate checks that the configuration values are usable.
func (C *Config) Validate() error {
	switch {
	case C.LoadAlpha < 0 || C.LoadAlpha > 1:
		return NewError(ErrValidation, fmt.Sprintf("load_alpha %g out of [0,1]", C.LoadAlpha), "", "Config.Validate")
	case C.RGBA[3] < 0 || C.RGBA[3] > 1:
		return NewError(ErrValidation, fmt.Sprintf("alpha %g of rgba out of [0,1]", C.RGBA[3]), "", "Config.Validate")
	case !ValidStep(C.SmoothStep):
		return NewError(ErrValidation, fmt.Sprintf("smooth_step must be 1, 2, 4 or 8, not %d", C.SmoothStep), "", "Config.Validate")
	case C.MaskKind != MaskGradient && C.MaskKind != MaskVolume:
		return NewError(ErrUnsupportedMask, fmt.Sprintf("mask must be %q or %q, not %q", MaskGradient, MaskVolume, C.MaskKind), "", "Config.Validate")
	case C.SmoothShortCircuit != ShortCircuitBatch && C.SmoothShortCircuit != ShortCircuitVolume:
		return NewError(ErrValidation, fmt.Sprintf("smooth_short_circuit must be %q or %q", ShortCircuitBatch, ShortCircuitVolume), "", "Config.Validate")
	case C.Palette == "":
		return NewError(ErrValidation, "no palette given", "", "Config.Validate")
	}
	return nil
}
