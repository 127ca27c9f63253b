/*
 * palette.go, part of orbitraj.
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
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/orbitraj"
	"gonum.org/v1/plot/palette"
)

// Palette is an ordered sequence of colors.
type Palette []orbitraj.RGBA

// Palettes maps palette names to palettes. The first ones are the
// standard palettes of UCSF Chimera's surface coloring.
var Palettes = map[string]Palette{
	"rainbow":           {{1, 0, 0, 1}, {1, 1, 0, 1}, {0, 1, 0, 1}, {0, 1, 1, 1}, {0, 0, 1, 1}},
	"red-white-blue":    {{1, 0, 0, 1}, {1, 1, 1, 1}, {0, 0, 1, 1}},
	"blue-white-red":    {{0, 0, 1, 1}, {1, 1, 1, 1}, {1, 0, 0, 1}},
	"cyan-white-maroon": {{0.059, 0.78, 0.86, 1}, {1, 1, 1, 1}, {0.73, 0.14, 0.2, 1}},
	"cyan-maroon":       {{0.059, 0.78, 0.86, 1}, {0.73, 0.14, 0.2, 1}},
	"grayscale":         {{0, 0, 0, 1}, {1, 1, 1, 1}},
	"heat":              FromPlot(palette.Heat(7, 1)),
}

// Names returns the names of the registered palettes, sorted.
func Names() []string {
	ret := make([]string, 0, len(Palettes))
	for k := range Palettes {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// FromPlot converts a gonum/plot palette into a Palette.
func FromPlot(p palette.Palette) Palette {
	cs := p.Colors()
	ret := make(Palette, len(cs))
	for i, c := range cs {
		ret[i] = ToRGBA(c)
	}
	return ret
}

// ToRGBA converts a color.Color into an orbitraj.RGBA (non-premultiplied).
func ToRGBA(c color.Color) orbitraj.RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return orbitraj.RGBA{}
	}
	fa := float64(a)
	return orbitraj.RGBA{float64(r) / fa, float64(g) / fa, float64(b) / fa, fa / 0xffff}
}

// ByName returns a copy of the palette registered with name.
func ByName(name string) (Palette, error) {
	p, ok := Palettes[name]
	if !ok {
		return nil, orbitraj.NewError(orbitraj.ErrUnsupportedColor, fmt.Sprintf("unknown palette %q", name), "", "ByName")
	}
	return append(Palette(nil), p...), nil
}

// ParsePalette returns the palette registered as s or, if there is none,
// parses s as a literal palette: colors separated by spaces, each color given as
// 3 or 4 comma-separated components in [0,1] (e.g. "1,0,0,1 0,0,1,1").
func ParsePalette(s string) (Palette, error) {
	if p, err := ByName(s); err == nil {
		return p, nil
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, orbitraj.NewError(orbitraj.ErrUnsupportedColor, "empty palette", "", "ParsePalette")
	}
	ret := make(Palette, 0, len(fields))
	for _, f := range fields {
		c, err := parseRGBA(f)
		if err != nil {
			return nil, orbitraj.NewError(orbitraj.ErrUnsupportedColor, fmt.Sprintf("%q is not a palette: %s", s, err.Error()), "", "ParsePalette")
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func parseRGBA(s string) (orbitraj.RGBA, error) {
	comps := strings.Split(s, ",")
	if len(comps) != 3 && len(comps) != 4 {
		return orbitraj.RGBA{}, fmt.Errorf("color %q needs 3 or 4 components", s)
	}
	ret := orbitraj.RGBA{0, 0, 0, 1}
	for i, c := range comps {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return orbitraj.RGBA{}, err
		}
		if v < 0 || v > 1 {
			return orbitraj.RGBA{}, fmt.Errorf("component %g of %q out of [0,1]", v, s)
		}
		ret[i] = v
	}
	return ret, nil
}

// Flatten returns a copy of p with every alpha set to alpha, if alpha is
// in [0,1]. Otherwise it returns an unchanged copy of p.
func Flatten(p Palette, alpha float64) Palette {
	ret := append(Palette(nil), p...)
	if !(alpha >= 0 && alpha <= 1) {
		return ret
	}
	for i := range ret {
		ret[i][3] = alpha
	}
	return ret
}
