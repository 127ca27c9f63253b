/*
 * unify.go, part of orbitraj.
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

package colors

import (
	"fmt"

	"github.com/rmera/orbitraj"
)

// NoAlpha can be given to Unify to keep the alpha values of the palette.
const NoAlpha = -1.0

// Unify builds one color map shared by all the volumes. Each volume is paired with the
// volume at the same index in sources, which supplies the values to be colored (if sources is nil,
// each volume is its own source). The value ranges of all the surface pieces, as given by
// a mask of kind maskKind, are merged into one global range, which is subdivided into as
// many values as colors in pal. If alpha is in [0,1], it replaces the alpha of every palette color.
//
// Each volume gets its own mask, bound to its source and to the new color map, and its
// pieces are recolored. The new map is returned. Previous color maps are never modified.
func Unify(volumes, sources []orbitraj.Volume, pal Palette, alpha float64, maskKind string) (*orbitraj.ColorMap, error) {
	newMask, err := MaskFactory(maskKind)
	if err != nil {
		return nil, orbitraj.ErrDecorate(err, "Unify")
	}
	if len(volumes) == 0 {
		return nil, orbitraj.NewError(orbitraj.ErrValidation, "no volumes to color", "", "Unify")
	}
	if sources == nil {
		sources = volumes
	}
	if len(sources) != len(volumes) {
		return nil, orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("%d color sources given for %d volumes", len(sources), len(volumes)), "", "Unify")
	}
	if len(pal) == 0 {
		return nil, orbitraj.NewError(orbitraj.ErrValidation, "empty palette", "", "Unify")
	}
	for i := range volumes {
		if volumes[i] == nil || sources[i] == nil {
			return nil, orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("nil volume or color source at index %d", i), "", "Unify")
		}
	}
	pal = Flatten(pal, alpha)
	masks := make([]orbitraj.Mask, len(volumes))
	ranges := make([]orbitraj.ValueRange, 0, len(volumes))
	for i, vol := range volumes {
		maskInstance := newMask()
		maskInstance.SetSource(sources[i])
		masks[i] = maskInstance
		for _, piece := range vol.Pieces() {
			r := maskInstance.ValueRange(piece)
			if r.Defined() {
				ranges = append(ranges, r)
			}
		}
	}
	global := orbitraj.UnionAll(ranges...)
	if !global.Defined() {
		orbitraj.Logf("orbitraj/colors.Unify: no defined values in %d volumes, using %v", len(volumes), global.Clamped())
	}
	values := orbitraj.Interpolate(global, len(pal))
	cm, err := orbitraj.NewColorMap(values, pal)
	if err != nil {
		return nil, orbitraj.ErrDecorate(err, "Unify")
	}
	for i, vol := range volumes {
		masks[i].SetColorMap(cm)
		vol.SetMask(masks[i])
		masks[i].ColorPieces(vol.Pieces())
	}
	return cm, nil
}

// Recolor sets cm as the color map of every volume's mask, and recolors the
// volume pieces with it. Volumes without a mask are left untouched.
func Recolor(volumes []orbitraj.Volume, cm *orbitraj.ColorMap) {
	for _, vol := range volumes {
		m := vol.Mask()
		if m == nil {
			continue
		}
		m.SetColorMap(cm)
		m.ColorPieces(vol.Pieces())
	}
}
