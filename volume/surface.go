/*
 * surface.go, part of orbitraj.
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

package volume

import (
	"math"

	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/cube"
	v3 "github.com/rmera/orbitraj/v3"
)

// Surface is the isosurface of a volume at one level. It implements orbitraj.Piece.
type Surface struct {
	Level     float64
	verts     *v3.Matrix
	Triangles [][3]int
	color     orbitraj.RGBA
	vcolors   []orbitraj.RGBA
}

func (S *Surface) Vertices() *v3.Matrix              { return S.verts }
func (S *Surface) Color() orbitraj.RGBA              { return S.color }
func (S *Surface) SetColor(c orbitraj.RGBA)          { S.color = c }
func (S *Surface) VertexColors() []orbitraj.RGBA     { return S.vcolors }
func (S *Surface) SetVertexColors(c []orbitraj.RGBA) { S.vcolors = c }

// Area returns the total area of the surface triangles.
func (S *Surface) Area() float64 {
	var area float64
	for _, t := range S.Triangles {
		a, b, c := S.verts.Vec(t[0]), S.verts.Vec(t[1]), S.verts.Vec(t[2])
		var u, w [3]float64
		for k := 0; k < 3; k++ {
			u[k] = b[k] - a[k]
			w[k] = c[k] - a[k]
		}
		cross := [3]float64{u[1]*w[2] - u[2]*w[1], u[2]*w[0] - u[0]*w[2], u[0]*w[1] - u[1]*w[0]}
		area += v3.Norm(cross) / 2
	}
	return area
}

// Corners of a cell, as offsets along each axis.
var corners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// The 6 tetrahedra that split a cell, all sharing the 0-6 diagonal.
var tetrahedra = [6][4]int{
	{0, 5, 1, 6}, {0, 1, 2, 6}, {0, 2, 3, 6},
	{0, 3, 7, 6}, {0, 7, 4, 6}, {0, 4, 5, 6},
}

type edge struct {
	a, b int //grid indexes, a < b
}

type mesher struct {
	G     *cube.Grid
	level float64
	verts []float64
	tri   [][3]int
	seen  map[edge]int
}

// vertex returns the index of the surface vertex on the edge between the grid points
// a and b, adding it if needed.
func (m *mesher) vertex(a, b [3]int, va, vb float64) int {
	ia := m.G.N[2]*(m.G.N[1]*a[0]+a[1]) + a[2]
	ib := m.G.N[2]*(m.G.N[1]*b[0]+b[1]) + b[2]
	key := edge{ia, ib}
	if ib < ia {
		key = edge{ib, ia}
	}
	if i, ok := m.seen[key]; ok {
		return i
	}
	t := 0.5
	if vb != va {
		t = (m.level - va) / (vb - va)
	}
	var u [3]float64
	for k := 0; k < 3; k++ {
		u[k] = float64(a[k]) + t*float64(b[k]-a[k])
	}
	x := m.G.XYZ(u)
	m.verts = append(m.verts, x[:]...)
	i := len(m.verts)/3 - 1
	m.seen[key] = i
	return i
}

func (m *mesher) tetrahedron(p [4][3]int, v [4]float64) {
	var in, out []int
	for i := range v {
		if v[i] >= m.level {
			in = append(in, i)
		} else {
			out = append(out, i)
		}
	}
	vx := func(i, j int) int { return m.vertex(p[i], p[j], v[i], v[j]) }
	switch len(in) {
	case 1, 3:
		lone, others := in, out
		if len(in) == 3 {
			lone, others = out, in
		}
		l := lone[0]
		m.tri = append(m.tri, [3]int{vx(l, others[0]), vx(l, others[1]), vx(l, others[2])})
	case 2:
		a, b := vx(in[0], out[0]), vx(in[0], out[1])
		c, d := vx(in[1], out[1]), vx(in[1], out[0])
		m.tri = append(m.tri, [3]int{a, b, c}, [3]int{a, c, d})
	}
}

// isosurface extracts the surface at level from the region r of G.
func isosurface(G *cube.Grid, r orbitraj.Region, level float64) *Surface {
	m := &mesher{G: G, level: level, seen: make(map[edge]int)}
	S := &Surface{Level: level}
	if math.IsNaN(level) {
		S.verts = v3.Zeros(0)
		return S
	}
	for i := r.Min[0]; i+r.Step[0] <= r.Max[0]; i += r.Step[0] {
		for j := r.Min[1]; j+r.Step[1] <= r.Max[1]; j += r.Step[1] {
			for k := r.Min[2]; k+r.Step[2] <= r.Max[2]; k += r.Step[2] {
				var cell [8][3]int
				var vals [8]float64
				for c, off := range corners {
					cell[c] = [3]int{i + off[0]*r.Step[0], j + off[1]*r.Step[1], k + off[2]*r.Step[2]}
					vals[c] = G.At(cell[c][0], cell[c][1], cell[c][2])
				}
				for _, t := range tetrahedra {
					m.tetrahedron([4][3]int{cell[t[0]], cell[t[1]], cell[t[2]], cell[t[3]]},
						[4]float64{vals[t[0]], vals[t[1]], vals[t[2]], vals[t[3]]})
				}
			}
		}
	}
	verts, err := v3.NewMatrix(m.verts)
	if err != nil {
		panic(err.Error()) //can't happen, we always append 3 numbers
	}
	S.verts = verts
	S.Triangles = m.tri
	return S
}
