/*
 * grid.go, part of orbitraj.
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
	"fmt"
	"math"

	"github.com/rmera/orbitraj"
	v3 "github.com/rmera/orbitraj/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Grid is the volumetric data of a cube file.
type Grid struct {
	Comments [2]string
	Origin   [3]float64
	//Number of points along each axis.
	N [3]int
	//Each row is the voxel vector along one axis.
	Axes *mat.Dense
	//Coordinates in Angstrom instead of Bohr.
	Angstrom bool
	//The values, with the last index running fastest.
	Values []float64

	AtomicNumbers []int
	Charges       []float64
	Atoms         *v3.Matrix
	//Indexes of the orbitals in the file, for orbital cubes.
	Orbitals []int

	inv *mat.Dense
}

// NewGrid returns a zero-filled grid with n points along each axis, the given origin and
// voxel vectors (one per row of axes).
func NewGrid(n [3]int, origin [3]float64, axes [3][3]float64) (*Grid, error) {
	if n[0] < 1 || n[1] < 1 || n[2] < 1 {
		return nil, Error{fmt.Sprintf("Invalid grid dimensions %v", n), "", []string{"NewGrid"}, true}
	}
	G := &Grid{Origin: origin, N: n, Values: make([]float64, n[0]*n[1]*n[2])}
	G.Axes = mat.NewDense(3, 3, []float64{axes[0][0], axes[0][1], axes[0][2],
		axes[1][0], axes[1][1], axes[1][2],
		axes[2][0], axes[2][1], axes[2][2]})
	if err := G.setInverse(); err != nil {
		return nil, errDecorate(err, "NewGrid")
	}
	return G, nil
}

func (G *Grid) setInverse() error {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(G.Axes); err != nil {
		return Error{"Voxel vectors are not linearly independent: " + err.Error(), "", []string{"setInverse"}, true}
	}
	G.inv = inv
	return nil
}

// Len returns the number of grid points.
func (G *Grid) Len() int {
	return G.N[0] * G.N[1] * G.N[2]
}

func (G *Grid) index(i, j, k int) int {
	return (i*G.N[1]+j)*G.N[2] + k
}

// At returns the value at the grid point i, j, k.
func (G *Grid) At(i, j, k int) float64 {
	return G.Values[G.index(i, j, k)]
}

// Set sets the value at the grid point i, j, k.
func (G *Grid) Set(i, j, k int, v float64) {
	G.Values[G.index(i, j, k)] = v
}

// XYZ returns the cartesian coordinates for the (possibly fractional) grid indexes.
func (G *Grid) XYZ(ijk [3]float64) [3]float64 {
	ret := G.Origin
	for a := 0; a < 3; a++ {
		for c := 0; c < 3; c++ {
			ret[c] += ijk[a] * G.Axes.At(a, c)
		}
	}
	return ret
}

// IJK returns the fractional grid indexes for the cartesian point xyz.
func (G *Grid) IJK(xyz [3]float64) [3]float64 {
	if G.inv == nil {
		if err := G.setInverse(); err != nil {
			panic(err.Error())
		}
	}
	var ret [3]float64
	for c := 0; c < 3; c++ {
		d := xyz[c] - G.Origin[c]
		for a := 0; a < 3; a++ {
			ret[a] += d * G.inv.At(c, a)
		}
	}
	return ret
}

const tolerance = 1e-9

// interpolate returns the trilinear interpolation at the fractional indexes u.
func (G *Grid) interpolate(u [3]float64) (float64, bool) {
	var lo [3]int
	var f [3]float64
	for a := 0; a < 3; a++ {
		max := float64(G.N[a] - 1)
		if u[a] < -tolerance || u[a] > max+tolerance {
			return 0, false
		}
		x := math.Max(0, math.Min(u[a], max))
		l := int(math.Floor(x))
		if l >= G.N[a]-1 {
			l = G.N[a] - 2
		}
		if l < 0 { //only one point along this axis
			l = 0
		}
		lo[a] = l
		f[a] = x - float64(l)
	}
	var ret float64
	for c := 0; c < 8; c++ {
		w := 1.0
		var idx [3]int
		for a := 0; a < 3; a++ {
			bit := (c >> a) & 1
			if bit == 1 {
				w *= f[a]
			} else {
				w *= 1 - f[a]
			}
			idx[a] = lo[a] + bit
			if idx[a] >= G.N[a] {
				idx[a] = G.N[a] - 1
			}
		}
		if w == 0 {
			continue
		}
		ret += w * G.At(idx[0], idx[1], idx[2])
	}
	return ret, true
}

// ValueAt returns the value of the field at xyz, interpolated from the
// closest grid points. It returns false for points outside the grid.
func (G *Grid) ValueAt(xyz [3]float64) (float64, bool) {
	return G.interpolate(G.IJK(xyz))
}

// GradientAt returns the gradient of the field at xyz, obtained by central differences
// (one-sided at the borders of the grid). It returns false for points outside the grid.
func (G *Grid) GradientAt(xyz [3]float64) ([3]float64, bool) {
	u := G.IJK(xyz)
	if _, ok := G.interpolate(u); !ok {
		return [3]float64{}, false
	}
	const h = 0.5
	var gijk [3]float64
	for a := 0; a < 3; a++ {
		max := float64(G.N[a] - 1)
		if max == 0 {
			continue
		}
		up, down := u, u
		up[a] = math.Min(u[a]+h, max)
		down[a] = math.Max(u[a]-h, 0)
		vu, _ := G.interpolate(up)
		vd, _ := G.interpolate(down)
		gijk[a] = (vu - vd) / (up[a] - down[a])
	}
	//d/dx_c = sum_a d(u_a)/dx_c dg/du_a
	var ret [3]float64
	for c := 0; c < 3; c++ {
		for a := 0; a < 3; a++ {
			ret[c] += G.inv.At(c, a) * gijk[a]
		}
	}
	return ret, true
}

// ValueRange returns the range of the grid values.
func (G *Grid) ValueRange() orbitraj.ValueRange {
	if len(G.Values) == 0 {
		return orbitraj.UndefinedRange()
	}
	return orbitraj.ValueRange{Lo: floats.Min(G.Values), Hi: floats.Max(G.Values)}
}

// Stats returns the mean and standard deviation of the grid values.
func (G *Grid) Stats() (mean, std float64) {
	return stat.MeanStdDev(G.Values, nil)
}

// NAtoms returns the number of atoms in the file header.
func (G *Grid) NAtoms() int {
	return len(G.AtomicNumbers)
}
