/*
 * colormap.go, part of orbitraj.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Values used in place of an undefined lower or upper bound
// when a range has to be subdivided.
const (
	DefaultLo = -1e3
	DefaultHi = 1e3
)

// RGBA is a color with its components in [0,1].
type RGBA [4]float64

// WithAlpha returns a copy of the color with its alpha component set to a.
func (c RGBA) WithAlpha(a float64) RGBA {
	c[3] = a
	return c
}

// ValueRange is a closed interval [Lo, Hi] of scalar values. A NaN bound
// is undefined.
type ValueRange struct {
	Lo float64
	Hi float64
}

// UndefinedRange returns a range with both bounds undefined.
func UndefinedRange() ValueRange {
	return ValueRange{math.NaN(), math.NaN()}
}

// Defined returns true if both bounds are defined.
func (R ValueRange) Defined() bool {
	return !math.IsNaN(R.Lo) && !math.IsNaN(R.Hi)
}

// Union returns the smallest range containing R and O. An undefined
// bound in one of the ranges takes the bound of the other.
func (R ValueRange) Union(O ValueRange) ValueRange {
	return ValueRange{minDefined(R.Lo, O.Lo), maxDefined(R.Hi, O.Hi)}
}

// Clamped returns the range with undefined bounds replaced by DefaultLo and DefaultHi.
func (R ValueRange) Clamped() ValueRange {
	if math.IsNaN(R.Lo) {
		R.Lo = DefaultLo
	}
	if math.IsNaN(R.Hi) {
		R.Hi = DefaultHi
	}
	return R
}

func (R ValueRange) String() string {
	return fmt.Sprintf("[%g, %g]", R.Lo, R.Hi)
}

// UnionAll returns the union of all the given ranges, taking the min of
// the lower bounds and the max of the upper bounds. Ranges with an undefined
// bound are ignored. If no range is left, the result is undefined.
func UnionAll(ranges ...ValueRange) ValueRange {
	los := make([]float64, 0, len(ranges))
	his := make([]float64, 0, len(ranges))
	for _, v := range ranges {
		if !v.Defined() {
			continue
		}
		los = append(los, v.Lo)
		his = append(his, v.Hi)
	}
	if len(los) == 0 {
		return UndefinedRange()
	}
	return ValueRange{floats.Min(los), floats.Max(his)}
}

func minDefined(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Min(a, b)
}

func maxDefined(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Max(a, b)
}

// Interpolate subdivides the range r in n-1 chunks, so n values are obtained.
// Undefined bounds are replaced by DefaultLo/DefaultHi. Each value is obtained
// by adding the chunk size to the previous one, so the last value is only
// approximately r.Hi.
func Interpolate(r ValueRange, n int) []float64 {
	if n <= 0 {
		return nil
	}
	r = r.Clamped()
	ret := make([]float64, n)
	ret[0] = r.Lo
	if n == 1 {
		return ret
	}
	delta := (r.Hi - r.Lo) / float64(n-1)
	for i := 1; i < n; i++ {
		ret[i] = ret[i-1] + delta
	}
	return ret
}

// ColorEntry is one (value, color) pair of a ColorMap.
type ColorEntry struct {
	Value float64
	Color RGBA
}

// ColorMap is an ordered sequence of (value, color) pairs. A ColorMap
// is shared by pointer among all the volumes of a set.
type ColorMap struct {
	Entries []ColorEntry
}

// NewColorMap zips values and colors into a new ColorMap.
// Both slices must have the same length.
func NewColorMap(values []float64, colors []RGBA) (*ColorMap, error) {
	if len(values) != len(colors) {
		return nil, NewError(ErrValidation, fmt.Sprintf("%d values given for %d colors", len(values), len(colors)), "", "NewColorMap")
	}
	C := &ColorMap{Entries: make([]ColorEntry, len(values))}
	for i, v := range values {
		C.Entries[i] = ColorEntry{v, colors[i]}
	}
	return C, nil
}

// Len returns the number of entries in the map. A nil map has none.
func (C *ColorMap) Len() int {
	if C == nil {
		return 0
	}
	return len(C.Entries)
}

// Values returns a copy of the values of the map.
func (C *ColorMap) Values() []float64 {
	ret := make([]float64, len(C.Entries))
	for i, v := range C.Entries {
		ret[i] = v.Value
	}
	return ret
}

// Colors returns a copy of the colors of the map.
func (C *ColorMap) Colors() []RGBA {
	ret := make([]RGBA, len(C.Entries))
	for i, v := range C.Entries {
		ret[i] = v.Color
	}
	return ret
}

// Range returns the range spanned by the map values. The range of a nil
// or empty map is undefined.
func (C *ColorMap) Range() ValueRange {
	if C.Len() == 0 {
		return UndefinedRange()
	}
	return ValueRange{C.Entries[0].Value, C.Entries[len(C.Entries)-1].Value}
}

// SetAlpha rewrites the alpha channel of every entry in place.
func (C *ColorMap) SetAlpha(alpha float64) {
	for i := range C.Entries {
		C.Entries[i].Color[3] = alpha
	}
}

// At returns the color for the value v, interpolated linearly between the two
// entries around it. Values outside the map get the color of the closest end.
// The entries must be sorted by value.
func (C *ColorMap) At(v float64) RGBA {
	n := len(C.Entries)
	if n == 0 {
		return RGBA{}
	}
	if math.IsNaN(v) || v <= C.Entries[0].Value {
		return C.Entries[0].Color
	}
	if v >= C.Entries[n-1].Value {
		return C.Entries[n-1].Color
	}
	for i := 1; i < n; i++ {
		b := C.Entries[i]
		if v > b.Value {
			continue
		}
		a := C.Entries[i-1]
		span := b.Value - a.Value
		if span <= 0 {
			return b.Color
		}
		f := (v - a.Value) / span
		var ret RGBA
		for k := range ret {
			ret[k] = a.Color[k] + f*(b.Color[k]-a.Color[k])
		}
		return ret
	}
	return C.Entries[n-1].Color
}

// Copy returns a deep copy of the map.
func (C *ColorMap) Copy() *ColorMap {
	ret := &ColorMap{Entries: make([]ColorEntry, len(C.Entries))}
	copy(ret.Entries, C.Entries)
	return ret
}

// Equal returns true if both maps have the same entries.
func (C *ColorMap) Equal(O *ColorMap) bool {
	if C == nil || O == nil {
		return C == O
	}
	if len(C.Entries) != len(O.Entries) {
		return false
	}
	for i, e := range C.Entries {
		if e != O.Entries[i] {
			return false
		}
	}
	return true
}
