/*
 * styler.go, part of orbitraj.
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

package movie

import (
	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/colors"
)

// Styler changes how sets of volumes are rendered. All its methods can be
// applied repeatedly with the same result.
type Styler struct {
	cfg *orbitraj.Config
}

// NewStyler returns a Styler with the defaults in cfg. A nil cfg means orbitraj.DefaultConfig().
func NewStyler(cfg *orbitraj.Config) *Styler {
	if cfg == nil {
		cfg = orbitraj.DefaultConfig()
	}
	return &Styler{cfg: cfg}
}

// SetIsosurface sets the levels of the isosurfaces of the volumes. The first two levels
// default to 0.0 and the configured isolevel. The order of the levels is not checked.
// Surfaces are not recomputed.
func (S *Styler) SetIsosurface(volumes []orbitraj.Volume, levels ...float64) {
	l := []float64{0.0, S.cfg.IsoLevel}
	copy(l, levels)
	if len(levels) > len(l) {
		l = append(l, levels[len(l):]...)
	}
	for _, v := range volumes {
		v.SetSurfaceLevels(l...)
	}
}

// SetOpacity sets the alpha of the volume surfaces. If cm is not nil, the volumes are
// colored by it: its alpha is rewritten in place and the pieces recolored from it. Otherwise,
// the alpha of the volume color, and of each piece color, is set.
func (S *Styler) SetOpacity(volumes []orbitraj.Volume, alpha float64, cm *orbitraj.ColorMap) {
	if cm != nil {
		cm.SetAlpha(alpha)
		colors.Recolor(volumes, cm)
		return
	}
	for _, v := range volumes {
		v.SetColor(v.Color().WithAlpha(alpha))
		for _, p := range v.Pieces() {
			p.SetColor(p.Color().WithAlpha(alpha))
		}
	}
}

// SetSmoothing sets the step of the active region of the volumes, along all axes. step must
// be 1, 2, 4 or 8, otherwise nothing is done. The region is rebuilt without letting the
// volume adjust the step, and without recomputing the surfaces.
//
// When a volume has no region, or its region already has the step, the configured
// policy applies: with orbitraj.ShortCircuitBatch the remaining volumes are not touched,
// with orbitraj.ShortCircuitVolume only that volume is skipped. It returns the number of
// volumes changed.
func (S *Styler) SetSmoothing(volumes []orbitraj.Volume, step int) int {
	if !orbitraj.ValidStep(step) {
		return 0
	}
	want := [3]int{step, step, step}
	changed := 0
	for _, v := range volumes {
		r := v.Region()
		if r == nil || r.Step == want {
			if S.cfg.SmoothShortCircuit == orbitraj.ShortCircuitVolume {
				continue
			}
			return changed
		}
		v.NewRegion(r.WithStep(step), false, false)
		changed++
	}
	return changed
}

// Colorize gives a single color to all surfaces of the volumes (see colors.ParseColor).
// A nil color means the configured one. Unsupported colors give an error, and
// nothing is changed.
func (S *Styler) Colorize(volumes []orbitraj.Volume, color interface{}) error {
	if color == nil {
		color = S.cfg.RGBA
	}
	return colors.Colorize(volumes, color)
}
