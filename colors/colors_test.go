/*
 * colors_test.go, part of orbitraj.
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
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/internal/testutil"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// two volumes whose values are their x coordinates.
func xVolumes() ([]orbitraj.Volume, []*testutil.Piece) {
	f := testutil.LinearField{Coef: [3]float64{1, 0, 0}}
	p1 := testutil.NewPiece(orbitraj.RGBA{}, [3]float64{0.5, 0, 0}, [3]float64{1, 0, 0})
	p2 := testutil.NewPiece(orbitraj.RGBA{}, [3]float64{-2, 0, 0}, [3]float64{0, 1, 0})
	p3 := testutil.NewPiece(orbitraj.RGBA{}, [3]float64{3, 0, 0}, [3]float64{2, 5, 5})
	empty := testutil.NewPiece(orbitraj.RGBA{})
	v1 := testutil.NewVolume("v1", f, p1, p2)
	v2 := testutil.NewVolume("v2", f, p3, empty)
	return []orbitraj.Volume{v1, v2}, []*testutil.Piece{p1, p2, p3, empty}
}

func TestUnifyVolumeMask(Te *testing.T) {
	vols, pieces := xVolumes()
	pal := Palettes["rainbow"]
	cm, err := Unify(vols, nil, pal, 0.4, orbitraj.MaskVolume)
	testutil.NoError(Te, err)
	if cm.Len() != len(pal) {
		Te.Fatalf("expected %d entries, got %d", len(pal), cm.Len())
	}
	want := []float64{-2, -0.75, 0.5, 1.75, 3}
	if !cmp.Equal(cm.Values(), want, approx) {
		Te.Errorf("expected values %v, got %v", want, cm.Values())
	}
	for i, c := range cm.Colors() {
		if c != pal[i].WithAlpha(0.4) {
			Te.Errorf("color %d is %v, expected %v", i, c, pal[i].WithAlpha(0.4))
		}
	}
	if pal[0][3] != 1 {
		Te.Error("the registered palette was modified")
	}
	for _, v := range vols {
		m := v.Mask()
		if _, ok := m.(*VolumeMask); !ok {
			Te.Fatalf("expected a *VolumeMask, got %T", m)
		}
		if m.ColorMap() != cm {
			Te.Error("volumes should share the returned color map")
		}
	}
	if vols[0].Mask() == vols[1].Mask() {
		Te.Error("each volume should get its own mask instance")
	}
	//vertex at x=-2 gets the first color, at x=3 the last.
	if pieces[1].VC[0] != cm.Entries[0].Color || pieces[2].VC[0] != cm.Entries[4].Color {
		Te.Errorf("wrong vertex colors %v %v", pieces[1].VC, pieces[2].VC)
	}
	if pieces[3].VC != nil {
		Te.Error("a piece without vertices should not be colored")
	}
}

func TestUnifyGradientAndSources(Te *testing.T) {
	vols, _ := xVolumes()
	steep := testutil.NewVolume("src1", testutil.LinearField{Coef: [3]float64{0, 3, 4}})
	flat := testutil.NewVolume("src2", testutil.LinearField{Coef: [3]float64{0, 0, 1}})
	cm, err := Unify(vols, []orbitraj.Volume{steep, flat}, Palettes["grayscale"], NoAlpha, orbitraj.MaskGradient)
	testutil.NoError(Te, err)
	if !cmp.Equal(cm.Values(), []float64{1, 5}, approx) {
		Te.Errorf("expected the gradient norms [1 5], got %v", cm.Values())
	}
	if cm.Entries[1].Color[3] != 1 {
		Te.Error("NoAlpha should keep the palette's alpha")
	}
	if _, ok := vols[0].Mask().(*GradientMask); !ok {
		Te.Errorf("expected a *GradientMask, got %T", vols[0].Mask())
	}
}

func TestUnifyUndefinedClamps(Te *testing.T) {
	box := &[2][3]float64{{100, 100, 100}, {101, 101, 101}}
	f := testutil.LinearField{Coef: [3]float64{1, 0, 0}, Box: box}
	v := testutil.NewVolume("outside", f, testutil.NewPiece(orbitraj.RGBA{}, [3]float64{0, 0, 0}))
	cm, err := Unify([]orbitraj.Volume{v}, nil, Palettes["red-white-blue"], NoAlpha, orbitraj.MaskVolume)
	testutil.NoError(Te, err)
	if !cmp.Equal(cm.Values(), []float64{-1000, 0, 1000}, approx) {
		Te.Errorf("expected the default range, got %v", cm.Values())
	}
}

func TestUnifyErrors(Te *testing.T) {
	vols, _ := xVolumes()
	before := vols[0].Mask()
	if _, err := Unify(vols, nil, Palettes["rainbow"], 1, "electrostatic"); !errors.Is(err, orbitraj.ErrUnsupportedMask) {
		Te.Errorf("expected an unsupported mask error, got %v", err)
	}
	if _, err := Unify(vols, vols[:1], Palettes["rainbow"], 1, orbitraj.MaskVolume); !errors.Is(err, orbitraj.ErrValidation) {
		Te.Errorf("expected a validation error, got %v", err)
	}
	if _, err := Unify(nil, nil, Palettes["rainbow"], 1, orbitraj.MaskVolume); !errors.Is(err, orbitraj.ErrValidation) {
		Te.Errorf("expected a validation error, got %v", err)
	}
	if vols[0].Mask() != before {
		Te.Error("failed calls should not change the volumes")
	}
}

func TestRecolorAfterAlpha(Te *testing.T) {
	vols, pieces := xVolumes()
	cm, err := Unify(vols, nil, Palettes["rainbow"], NoAlpha, orbitraj.MaskVolume)
	testutil.NoError(Te, err)
	cm.SetAlpha(0.25)
	Recolor(vols, cm)
	for _, c := range pieces[0].VC {
		if math.Abs(c[3]-0.25) > 1e-12 {
			Te.Errorf("alpha not updated: %v", c)
		}
	}
}

func TestPalettes(Te *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name)
		testutil.NoError(Te, err)
		if len(p) < 2 {
			Te.Errorf("palette %s has %d colors", name, len(p))
		}
	}
	if _, err := ByName("nope"); !errors.Is(err, orbitraj.ErrUnsupportedColor) {
		Te.Errorf("expected an unsupported color error, got %v", err)
	}
	lit, err := ParsePalette("1,0,0 0,0,1,0.5")
	testutil.NoError(Te, err)
	if diff := cmp.Diff(Palette{{1, 0, 0, 1}, {0, 0, 1, 0.5}}, lit); diff != "" {
		Te.Errorf("wrong literal palette (-want +got):\n%s", diff)
	}
	if _, err := ParsePalette("1,0 nonsense"); !errors.Is(err, orbitraj.ErrUnsupportedColor) {
		Te.Errorf("expected an unsupported color error, got %v", err)
	}
	flat := Flatten(lit, 0.1)
	if flat[0][3] != 0.1 || lit[0][3] != 1 {
		Te.Error("Flatten should return a modified copy")
	}
	if Flatten(lit, 3)[1][3] != 0.5 || Flatten(lit, math.NaN())[1][3] != 0.5 {
		Te.Error("alphas out of [0,1] should be ignored")
	}
}

func TestColorize(Te *testing.T) {
	vols, pieces := xVolumes()
	_, err := Unify(vols, nil, Palettes["rainbow"], NoAlpha, orbitraj.MaskVolume)
	testutil.NoError(Te, err)
	pieces[0].VC = []orbitraj.RGBA{{1, 1, 1, 1}, {1, 1, 1, 1}}
	testutil.NoError(Te, Colorize(vols, "red"))
	if vols[0].Mask() != nil {
		Te.Error("Colorize should detach the masks")
	}
	if pieces[0].C != (orbitraj.RGBA{1, 0, 0, 1}) || pieces[0].VC != nil {
		Te.Errorf("piece not colored: %v %v", pieces[0].C, pieces[0].VC)
	}
	testutil.NoError(Te, Colorize(vols, color.NRGBA{0, 255, 0, 255}))
	if pieces[2].C != (orbitraj.RGBA{0, 1, 0, 1}) {
		Te.Errorf("piece not colored: %v", pieces[2].C)
	}
	err = Colorize(vols, 42)
	if !errors.Is(err, orbitraj.ErrUnsupportedColor) {
		Te.Errorf("expected an unsupported color error, got %v", err)
	}
	if pieces[2].C != (orbitraj.RGBA{0, 1, 0, 1}) {
		Te.Error("a failed Colorize should not change anything")
	}
}

func TestColorBar(Te *testing.T) {
	cm, _ := orbitraj.NewColorMap(orbitraj.Interpolate(orbitraj.ValueRange{Lo: 0, Hi: 1}, 5), Palettes["rainbow"])
	P := NewPlotColorMap(cm)
	if _, err := P.At(2); err == nil {
		Te.Error("values over the max should fail")
	}
	if len(P.Palette(10).Colors()) != 10 {
		Te.Error("wrong palette length")
	}
	path := filepath.Join(Te.TempDir(), "bar.png")
	testutil.NoError(Te, ColorBar(cm, path, false))
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		Te.Errorf("color bar not written: %v", err)
	}
	single, _ := orbitraj.NewColorMap([]float64{1}, Palettes["rainbow"][:1])
	if err := ColorBar(single, path, true); !errors.Is(err, orbitraj.ErrValidation) {
		Te.Errorf("expected a validation error, got %v", err)
	}
}
