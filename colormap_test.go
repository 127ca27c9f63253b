/*
 * colormap_test.go, part of orbitraj.
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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestUnion(Te *testing.T) {
	pairs := [][2]ValueRange{
		{{0, 1}, {2, 3}},
		{{-5, 0.5}, {-1, 10}},
		{{0.1, 0.2}, {0.1, 0.2}},
		{{-3, -2}, {-10, -9}},
	}
	for _, p := range pairs {
		A, B := p[0], p[1]
		want := ValueRange{math.Min(A.Lo, B.Lo), math.Max(A.Hi, B.Hi)}
		if got := A.Union(B); got != want {
			Te.Errorf("%v U %v: expected %v, got %v", A, B, want, got)
		}
		if got := UnionAll(A, B); got != want {
			Te.Errorf("UnionAll(%v, %v): expected %v, got %v", A, B, want, got)
		}
	}
	partial := ValueRange{math.NaN(), 4}
	if got := (ValueRange{1, 2}).Union(partial); got != (ValueRange{1, 4}) {
		Te.Errorf("union with a half-defined range gave %v", got)
	}
}

func TestUnionAllSkipsUndefined(Te *testing.T) {
	got := UnionAll(ValueRange{0, 1}, ValueRange{math.NaN(), 50}, ValueRange{-2, math.NaN()}, ValueRange{0.5, 3})
	if got != (ValueRange{0, 3}) {
		Te.Errorf("ranges with undefined bounds should be ignored, got %v", got)
	}
	if UnionAll().Defined() {
		Te.Error("union of nothing should be undefined")
	}
	clamped := UnionAll(UndefinedRange()).Clamped()
	if clamped != (ValueRange{DefaultLo, DefaultHi}) {
		Te.Errorf("expected the default bounds, got %v", clamped)
	}
}

func TestInterpolate(Te *testing.T) {
	ranges := []ValueRange{{0, 1}, {-3.2, 7.7}, {0.001, 0.0011}, {-1e3, 1e3}}
	for _, r := range ranges {
		for _, n := range []int{2, 3, 5, 10, 17} {
			values := Interpolate(r, n)
			if len(values) != n {
				Te.Fatalf("expected %d values, got %d", n, len(values))
			}
			if values[0] != r.Lo {
				Te.Errorf("first value should be %g, got %g", r.Lo, values[0])
			}
			for i := 1; i < n; i++ {
				if values[i] <= values[i-1] {
					Te.Errorf("values not strictly increasing: %v", values)
					break
				}
			}
			delta := (r.Hi - r.Lo) / float64(n-1)
			last := r.Lo + float64(n-1)*delta
			if math.Abs(values[n-1]-last) > 1e-9*math.Max(1, math.Abs(last)) {
				Te.Errorf("last value %g too far from %g", values[n-1], last)
			}
		}
	}
	if Interpolate(ValueRange{0, 1}, 0) != nil {
		Te.Error("0 values should give nil")
	}
	if v := Interpolate(ValueRange{0.3, 1}, 1); len(v) != 1 || v[0] != 0.3 {
		Te.Errorf("1 value should be the lower bound, got %v", v)
	}
	if v := Interpolate(UndefinedRange(), 3); !cmp.Equal(v, []float64{-1e3, 0, 1e3}, cmpopts.EquateApprox(0, 1e-9)) {
		Te.Errorf("undefined range should be clamped, got %v", v)
	}
}

func TestColorMapFivePalette(Te *testing.T) {
	palette := []RGBA{{1, 0, 0, 1}, {1, 1, 0, 1}, {0, 1, 0, 1}, {0, 1, 1, 1}, {0, 0, 1, 1}}
	cm, err := NewColorMap(Interpolate(ValueRange{0, 1}, len(palette)), palette)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if !cmp.Equal(cm.Values(), want, cmpopts.EquateApprox(0, 1e-12)) {
		Te.Errorf("unexpected values %v", cm.Values())
	}
	if !cmp.Equal(cm.Colors(), palette) {
		Te.Errorf("colors out of order: %v", cm.Colors())
	}
	if _, err := NewColorMap([]float64{1, 2}, palette); !errors.Is(err, ErrValidation) {
		Te.Errorf("expected a validation error, got %v", err)
	}
}

func TestColorMapAlpha(Te *testing.T) {
	cm, _ := NewColorMap([]float64{0, 1}, []RGBA{{1, 0, 0, 1}, {0, 0, 1, 1}})
	cm.SetAlpha(0.3)
	once := cm.Copy()
	cm.SetAlpha(0.3)
	if diff := cmp.Diff(once, cm); diff != "" {
		Te.Errorf("SetAlpha is not idempotent (-once +twice):\n%s", diff)
	}
	for _, c := range cm.Colors() {
		if c[3] != 0.3 {
			Te.Errorf("alpha not set: %v", c)
		}
	}
	if cm.Entries[0].Color[0] != 1 || cm.Entries[1].Color[2] != 1 {
		Te.Error("SetAlpha changed the RGB channels")
	}
}

func TestColorMapAt(Te *testing.T) {
	cm, _ := NewColorMap([]float64{0, 1}, []RGBA{{0, 0, 0, 1}, {1, 1, 1, 1}})
	mid := cm.At(0.5)
	if !cmp.Equal(mid, RGBA{0.5, 0.5, 0.5, 1}, cmpopts.EquateApprox(0, 1e-12)) {
		Te.Errorf("expected middle gray, got %v", mid)
	}
	if cm.At(-4) != cm.Entries[0].Color || cm.At(9) != cm.Entries[1].Color {
		Te.Error("values outside the map should take the end colors")
	}
	if cm.At(math.NaN()) != cm.Entries[0].Color {
		Te.Error("NaN should take the first color")
	}
}

func TestNilColorMap(Te *testing.T) {
	var cm *ColorMap
	if cm.Len() != 0 {
		Te.Errorf("a nil map has %d entries", cm.Len())
	}
	if cm.Range().Defined() {
		Te.Errorf("a nil map has the defined range %v", cm.Range())
	}
}
