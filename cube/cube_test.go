/*
 * cube_test.go, part of orbitraj.
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

package cube

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	v3 "github.com/rmera/orbitraj/v3"
)

// linearGrid returns a 4x3x5 grid with values 2x - y + 0.5z + 1 and 0.5 Bohr spacing.
func linearGrid(Te *testing.T) *Grid {
	G, err := NewGrid([3]int{4, 3, 5}, [3]float64{-1, 0, 1}, [3][3]float64{{0.5, 0, 0}, {0, 0.5, 0}, {0, 0, 0.5}})
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 5; k++ {
				x := G.XYZ([3]float64{float64(i), float64(j), float64(k)})
				G.Set(i, j, k, 2*x[0]-x[1]+0.5*x[2]+1)
			}
		}
	}
	return G
}

func TestValueAt(Te *testing.T) {
	G := linearGrid(Te)
	for _, p := range [][3]float64{{-1, 0, 1}, {-0.3, 0.7, 2.2}, {0.5, 1, 3}} {
		v, ok := G.ValueAt(p)
		if !ok {
			Te.Errorf("point %v should be inside the grid", p)
			continue
		}
		want := 2*p[0] - p[1] + 0.5*p[2] + 1
		if math.Abs(v-want) > 1e-9 {
			Te.Errorf("ValueAt(%v) = %f, want %f", p, v, want)
		}
	}
	if _, ok := G.ValueAt([3]float64{5, 0, 0}); ok {
		Te.Error("a point outside the grid should not have a value")
	}
}

func TestGradientAt(Te *testing.T) {
	G := linearGrid(Te)
	for _, p := range [][3]float64{{-0.4, 0.3, 1.9}, {-1, 0, 1}, {0.5, 1, 3}} {
		g, ok := G.GradientAt(p)
		if !ok {
			Te.Fatalf("point %v should be inside the grid", p)
		}
		if !cmp.Equal(g[:], []float64{2, -1, 0.5}, cmpopts.EquateApprox(0, 1e-9)) {
			Te.Errorf("GradientAt(%v) = %v", p, g)
		}
	}
}

func TestIJK(Te *testing.T) {
	G, err := NewGrid([3]int{3, 3, 3}, [3]float64{1, 1, 1}, [3][3]float64{{1, 1, 0}, {0, 1, 0}, {0, 0, 2}})
	if err != nil {
		Te.Fatal(err)
	}
	u := [3]float64{1.5, 0.25, 2}
	back := G.IJK(G.XYZ(u))
	if !cmp.Equal(back[:], u[:], cmpopts.EquateApprox(0, 1e-12)) {
		Te.Errorf("IJK(XYZ(%v)) = %v", u, back)
	}
	if _, err := NewGrid([3]int{2, 2, 2}, [3]float64{}, [3][3]float64{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}); err == nil {
		Te.Error("parallel voxel vectors should be rejected")
	}
}

func TestWriteRead(Te *testing.T) {
	G := linearGrid(Te)
	G.Comments = [2]string{"test cube", "linear field"}
	G.AtomicNumbers = []int{8, 1}
	G.Charges = []float64{8, 1}
	G.Atoms = atoms(Te, []float64{0, 0, 0, 0, 0, 1.8})
	dir := Te.TempDir()
	for _, name := range []string{"plain.cub", "comp.cub.gz", "comp.cub.zst"} {
		path := filepath.Join(dir, name)
		if err := Write(path, G); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		R, err := Read(path)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if R.N != G.N || R.Comments != G.Comments {
			Te.Errorf("%s: header mismatch %v %v", name, R.N, R.Comments)
		}
		if !cmp.Equal(R.Values, G.Values, cmpopts.EquateApprox(1e-4, 1e-9)) {
			Te.Errorf("%s: values differ", name)
		}
		if !cmp.Equal(R.AtomicNumbers, G.AtomicNumbers) || R.Atoms.Vec(1)[2] != 1.8 {
			Te.Errorf("%s: atoms differ %v %v", name, R.AtomicNumbers, R.Atoms)
		}
	}
}

const orbitalCube = `MO cube
written by hand
   -1    0.000000    0.000000    0.000000
    2    1.000000    0.000000    0.000000
    2    0.000000    1.000000    0.000000
   -2    0.000000    0.000000    1.000000
    1    1.000000    0.000000    0.000000    0.000000
    2    5    6
  1.0 -1.0 2.0 -2.0 3.0 -3.0
  4.0 -4.0 5.0 -5.0 6.0 -6.0
  7.0 -7.0 8.0 -8.0
`

func TestDecodeOrbitals(Te *testing.T) {
	G, err := Decode(strings.NewReader(orbitalCube))
	if err != nil {
		Te.Fatal(err)
	}
	if !G.Angstrom {
		Te.Error("negative point count should mean Angstrom")
	}
	if !cmp.Equal(G.Orbitals, []int{5, 6}) {
		Te.Errorf("orbitals %v", G.Orbitals)
	}
	if !cmp.Equal(G.Values, []float64{1, 2, 3, 4, 5, 6, 7, 8}) {
		Te.Errorf("only the first orbital should be read, got %v", G.Values)
	}
	if r := G.ValueRange(); r.Lo != 1 || r.Hi != 8 {
		Te.Errorf("range %v", r)
	}
	mean, _ := G.Stats()
	if mean != 4.5 {
		Te.Errorf("mean %f", mean)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, G); err != nil {
		Te.Fatal(err)
	}
	R, err := Decode(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if !cmp.Equal(R.Values, G.Values) || !R.Angstrom || len(R.Orbitals) != 1 {
		Te.Errorf("orbital cube did not survive encoding: %v %v", R.Values, R.Orbitals)
	}
}

func TestDecodeErrors(Te *testing.T) {
	truncated := strings.Join(strings.Split(orbitalCube, "\n")[:9], "\n")
	for name, input := range map[string]string{
		"empty":     "",
		"truncated": truncated,
		"garbage":   "a\nb\nthree 0 0 0\n",
	} {
		if _, err := Decode(strings.NewReader(input)); err == nil {
			Te.Errorf("%s: expected an error", name)
		}
	}
	if _, err := Read(filepath.Join(Te.TempDir(), "missing.cub")); err == nil {
		Te.Error("expected an error for a missing file")
	} else if e, ok := err.(Error); !ok || e.FileName() == "" {
		Te.Errorf("unexpected error %v", err)
	}
}

func atoms(Te *testing.T, data []float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		Te.Fatal(err)
	}
	return m
}
