/*
 * colorize.go, part of orbitraj.
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
	"strings"

	"github.com/rmera/orbitraj"
	"golang.org/x/image/colornames"
)

// ParseColor interprets c as a color. c can be an orbitraj.RGBA, a
// color.Color, or a string with either a color name (the SVG 1.1 names, e.g. "gray",
// "orchid") or a literal "r,g,b[,a]" color. Anything else gives an error wrapping
// orbitraj.ErrUnsupportedColor.
func ParseColor(c interface{}) (orbitraj.RGBA, error) {
	switch v := c.(type) {
	case orbitraj.RGBA:
		return v, nil
	case color.Color:
		return ToRGBA(v), nil
	case string:
		name := strings.ToLower(strings.TrimSpace(v))
		if named, ok := colornames.Map[name]; ok {
			return ToRGBA(named), nil
		}
		rgba, err := parseRGBA(name)
		if err == nil {
			return rgba, nil
		}
	}
	return orbitraj.RGBA{}, orbitraj.NewError(orbitraj.ErrUnsupportedColor, fmt.Sprintf("color %v not recognized", c), "", "ParseColor")
}

// Colorize gives every surface piece of the volumes the single color c (see ParseColor).
// The color becomes the volumes' own color, and their masks are removed, so surfaces
// recomputed later get it too. Per-vertex colors are removed. If c can't be interpreted,
// nothing is changed.
func Colorize(volumes []orbitraj.Volume, c interface{}) error {
	rgba, err := ParseColor(c)
	if err != nil {
		return orbitraj.ErrDecorate(err, "Colorize")
	}
	for _, vol := range volumes {
		vol.SetMask(nil)
		vol.SetColor(rgba)
		for _, p := range vol.Pieces() {
			p.SetVertexColors(nil)
			p.SetColor(rgba)
		}
	}
	return nil
}
