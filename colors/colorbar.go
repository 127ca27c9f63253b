/*
 * colorbar.go, part of orbitraj.
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
	"math"

	"github.com/rmera/orbitraj"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotColorMap adapts an orbitraj.ColorMap to gonum/plot's palette.ColorMap,
// so shared color maps can be drawn.
type PlotColorMap struct {
	cm       *orbitraj.ColorMap
	min, max float64
	alpha    float64
}

// NewPlotColorMap returns a PlotColorMap spanning the range of cm.
func NewPlotColorMap(cm *orbitraj.ColorMap) *PlotColorMap {
	r := cm.Range()
	return &PlotColorMap{cm: cm, min: r.Lo, max: r.Hi, alpha: 1}
}

// At returns the color for v. It fails for values outside [Min, Max].
func (P *PlotColorMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < P.min:
		return nil, palette.ErrUnderflow
	case v > P.max:
		return nil, palette.ErrOverflow
	}
	return toNRGBA(P.cm.At(v), P.alpha), nil
}

func (P *PlotColorMap) Max() float64           { return P.max }
func (P *PlotColorMap) Min() float64           { return P.min }
func (P *PlotColorMap) SetMax(v float64)       { P.max = v }
func (P *PlotColorMap) SetMin(v float64)       { P.min = v }
func (P *PlotColorMap) Alpha() float64         { return P.alpha }
func (P *PlotColorMap) SetAlpha(alpha float64) { P.alpha = alpha }

// Palette returns n colors evenly spaced over [Min, Max].
func (P *PlotColorMap) Palette(n int) palette.Palette {
	ret := make(plotPalette, n)
	for i := range ret {
		v := P.min
		if n > 1 {
			v += (P.max - P.min) * float64(i) / float64(n-1)
		}
		ret[i] = toNRGBA(P.cm.At(v), P.alpha)
	}
	return ret
}

type plotPalette []color.Color

func (p plotPalette) Colors() []color.Color { return p }

// the alpha of the map entry is multiplied by the plot's alpha.
func toNRGBA(c orbitraj.RGBA, alpha float64) color.NRGBA {
	ch := func(f float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	return color.NRGBA{ch(c[0]), ch(c[1]), ch(c[2]), ch(c[3] * alpha)}
}

// ColorBar draws cm as a color bar and saves it to path. The format is
// given by the extension of path (png, svg, pdf...).
func ColorBar(cm *orbitraj.ColorMap, path string, vertical bool) error {
	r := cm.Range()
	if !r.Defined() || r.Hi <= r.Lo {
		return orbitraj.NewError(orbitraj.ErrValidation, fmt.Sprintf("can't draw a color bar for the range %v", r), path, "ColorBar")
	}
	p := plot.New()
	p.Title.Text = "Color map"
	bar := &plotter.ColorBar{ColorMap: NewPlotColorMap(cm), Vertical: vertical, Colors: 256}
	p.Add(bar)
	w, h := 6*vg.Inch, 1.5*vg.Inch
	if vertical {
		p.HideX()
		w, h = h, w
	} else {
		p.HideY()
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("orbitraj/colors.ColorBar: can't save %s: %w", path, err)
	}
	return nil
}
