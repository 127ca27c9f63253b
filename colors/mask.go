/*
 * mask.go, part of orbitraj.
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
	"math"

	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
	"gonum.org/v1/gonum/floats"
)

// sampler obtains the value to be mapped to a color at a point of a field.
type sampler func(f orbitraj.Field, xyz [3]float64) (float64, bool)

// mask implements orbitraj.Mask for any sampler.
type mask struct {
	source orbitraj.Volume
	cm     *orbitraj.ColorMap
	sample sampler
}

func (M *mask) SetSource(v orbitraj.Volume)       { M.source = v }
func (M *mask) Source() orbitraj.Volume           { return M.source }
func (M *mask) SetColorMap(cm *orbitraj.ColorMap) { M.cm = cm }
func (M *mask) ColorMap() *orbitraj.ColorMap      { return M.cm }

// values returns the value for each vertex of p. Vertices where
// the value is not defined get a NaN.
func (M *mask) values(p orbitraj.Piece) []float64 {
	verts := p.Vertices()
	n := verts.NVecs()
	if n == 0 || M.source == nil || M.source.Data() == nil {
		return nil
	}
	field := M.source.Data()
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := M.sample(field, verts.Vec(i))
		if !ok {
			v = math.NaN()
		}
		ret[i] = v
	}
	return ret
}

// ValueRange returns the range of the values of the piece's vertices. A bound
// is undefined if no vertex has a defined value.
func (M *mask) ValueRange(p orbitraj.Piece) orbitraj.ValueRange {
	vals := M.values(p)
	defined := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return orbitraj.UndefinedRange()
	}
	return orbitraj.ValueRange{Lo: floats.Min(defined), Hi: floats.Max(defined)}
}

// ColorPieces sets per-vertex colors on the pieces from the current color map.
// It does nothing if the mask has no color map.
func (M *mask) ColorPieces(pieces []orbitraj.Piece) {
	if M.cm == nil {
		return
	}
	for _, p := range pieces {
		vals := M.values(p)
		if vals == nil {
			continue
		}
		colors := make([]orbitraj.RGBA, len(vals))
		for i, v := range vals {
			colors[i] = M.cm.At(v)
		}
		p.SetVertexColors(colors)
	}
}

// GradientMask colors surfaces by the magnitude of the gradient of the
// source volume at each vertex.
type GradientMask struct {
	mask
}

// NewGradientMask returns a GradientMask with no source and no color map.
func NewGradientMask() *GradientMask {
	return &GradientMask{mask{sample: gradientNorm}}
}

func gradientNorm(f orbitraj.Field, xyz [3]float64) (float64, bool) {
	g, ok := f.GradientAt(xyz)
	if !ok {
		return 0, false
	}
	return v3.Norm(g), true
}

// VolumeMask colors surfaces by the values of the source volume at each vertex.
type VolumeMask struct {
	mask
}

// NewVolumeMask returns a VolumeMask with no source and no color map.
func NewVolumeMask() *VolumeMask {
	return &VolumeMask{mask{sample: fieldValue}}
}

func fieldValue(f orbitraj.Field, xyz [3]float64) (float64, bool) {
	return f.ValueAt(xyz)
}

// MaskFactory returns the constructor for the given mask kind, orbitraj.MaskGradient
// or orbitraj.MaskVolume.
func MaskFactory(kind string) (func() orbitraj.Mask, error) {
	switch kind {
	case orbitraj.MaskGradient:
		return func() orbitraj.Mask { return NewGradientMask() }, nil
	case orbitraj.MaskVolume:
		return func() orbitraj.Mask { return NewVolumeMask() }, nil
	}
	return nil, orbitraj.NewError(orbitraj.ErrUnsupportedMask, fmt.Sprintf("mask must be %q or %q, not %q", orbitraj.MaskGradient, orbitraj.MaskVolume, kind), "", "MaskFactory")
}
