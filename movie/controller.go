/*
 * controller.go, part of orbitraj.
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
	"context"

	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/colors"
)

// Controller puts together a Synchronizer and the Styler for its volumes. All
// its changes go through Synchronizer.Update.
type Controller struct {
	*Synchronizer
}

// NewController returns a Controller for the frames of ensemble (see NewSynchronizer).
func NewController(ensemble orbitraj.Ensemble, opener orbitraj.Opener, converter Converter, cfg *orbitraj.Config) *Controller {
	return &Controller{NewSynchronizer(ensemble, opener, converter, cfg)}
}

// Load populates the Synchronizer from paths (see Synchronizer.Populate) and smooths
// the new volumes with the configured step.
func (C *Controller) Load(ctx context.Context, paths []string) error {
	if err := C.Populate(ctx, paths); err != nil {
		return err
	}
	if C.cfg.SmoothStep == 1 {
		return nil
	}
	return C.Update(func(vols []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		C.styler.SetSmoothing(vols, C.cfg.SmoothStep)
		return cm, nil
	})
}

// Refresh recomputes the surfaces of all volumes.
func (C *Controller) Refresh() error {
	return C.Update(func(vols []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		for _, v := range vols {
			v.Show()
		}
		return cm, nil
	})
}

// Reconfigure sets the upper isosurface level to isolevel (the lower one to 0.0),
// recomputes the surfaces, and colors them again with a new shared map with the given
// alpha, since their values changed. The volume of the current frame stays shown.
// The configured palette and mask kind are checked first, if either is wrong nothing
// is changed.
func (C *Controller) Reconfigure(isolevel, alpha float64) error {
	pal, err := colors.ParsePalette(C.cfg.Palette)
	if err != nil {
		return orbitraj.ErrDecorate(err, "movie.Controller.Reconfigure")
	}
	if _, err := colors.MaskFactory(C.cfg.MaskKind); err != nil {
		return orbitraj.ErrDecorate(err, "movie.Controller.Reconfigure")
	}
	err = C.Update(func(vols []orbitraj.Volume, _ *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		C.styler.SetIsosurface(vols, 0.0, isolevel)
		for _, v := range vols {
			v.Show()
		}
		return colors.Unify(vols, nil, pal, alpha, C.cfg.MaskKind)
	})
	if err != nil {
		return orbitraj.ErrDecorate(err, "movie.Controller.Reconfigure")
	}
	C.Select(C.Current())
	orbitraj.Logf("orbitraj/movie.Reconfigure: isolevel %g, alpha %g", isolevel, alpha)
	return nil
}

// ColorBy colors the volumes with a new shared map built from the values of sources (nil
// means each volume is its own source), with the given palette (a name or literal colors),
// alpha (colors.NoAlpha keeps the palette's) and mask kind.
func (C *Controller) ColorBy(sources []orbitraj.Volume, palette string, alpha float64, maskKind string) error {
	pal, err := colors.ParsePalette(palette)
	if err != nil {
		return orbitraj.ErrDecorate(err, "movie.Controller.ColorBy")
	}
	return C.Update(func(vols []orbitraj.Volume, _ *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		return colors.Unify(vols, sources, pal, alpha, maskKind)
	})
}

// SetOpacity sets the alpha of all surfaces, through the shared map if there is one.
func (C *Controller) SetOpacity(alpha float64) error {
	return C.Update(func(vols []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		C.styler.SetOpacity(vols, alpha, cm)
		return cm, nil
	})
}

// Smooth sets the region step of all volumes (see Styler.SetSmoothing).
func (C *Controller) Smooth(step int) error {
	return C.Update(func(vols []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		C.styler.SetSmoothing(vols, step)
		return cm, nil
	})
}

// Colorize gives all surfaces a single color (see Styler.Colorize). The shared
// map is dropped.
func (C *Controller) Colorize(color interface{}) error {
	return C.Update(func(vols []orbitraj.Volume, cm *orbitraj.ColorMap) (*orbitraj.ColorMap, error) {
		if err := C.styler.Colorize(vols, color); err != nil {
			return cm, err
		}
		return nil, nil
	})
}
