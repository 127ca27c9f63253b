/*
 * interfaces.go, part of orbitraj.
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

import v3 "github.com/rmera/orbitraj/v3"

// Ensemble is an ordered, fixed-length sequence of frames, i.e.
// a trajectory. It is read-only for orbitraj.
type Ensemble interface {

	//Returns the number of frames
	Len() int

	//A name for the ensemble, used only for messages.
	Name() string
}

// Field is the scalar data of a volume, indexed by cartesian coordinates.
type Field interface {

	//ValueAt returns the value of the field at the given point.
	//The boolean is false if the point is outside the field.
	ValueAt(xyz [3]float64) (float64, bool)

	//GradientAt returns the gradient of the field at the given point.
	//The boolean is false if the point is outside the field.
	GradientAt(xyz [3]float64) ([3]float64, bool)
}

// Piece is a renderable fragment of the isosurface extracted from a volume.
type Piece interface {
	//The vertices of the piece, one per row.
	Vertices() *v3.Matrix

	//Color is the single color of the piece, used when the piece has no per-vertex colors.
	Color() RGBA
	SetColor(c RGBA)

	//Per-vertex colors. nil means the piece is colored by Color.
	VertexColors() []RGBA
	SetVertexColors(c []RGBA)
}

// Mask maps the scalar values of a "source" volume to colors
// for the surface pieces of another (or the same) volume.
type Mask interface {
	//SetSource sets the volume that supplies the values to be mapped to colors.
	SetSource(v Volume)

	SetColorMap(cm *ColorMap)
	ColorMap() *ColorMap

	//ValueRange returns the range of the values the mask would map to colors
	//for the vertices of the piece. Bounds are NaN if undefined.
	ValueRange(p Piece) ValueRange

	//ColorPieces recolors the pieces with the current color map.
	ColorPieces(pieces []Piece)
}

// Volume is a scalar 3D grid plus its rendering state. orbitraj only changes
// its rendering attributes and closes it, it never touches the grid's contents.
type Volume interface {
	Name() string

	//The path the volume was opened from.
	Path() string

	//The model id given by the opening service.
	ModelID() int

	Shown() bool
	SetShown(shown bool)

	//The cutoffs that define the isosurfaces.
	SurfaceLevels() []float64
	SetSurfaceLevels(levels ...float64)

	//Pieces returns the current surface pieces. It can be empty if the
	//surfaces have not been computed yet (see Show).
	Pieces() []Piece

	//Region returns the active region, or nil if there is none.
	Region() *Region

	//NewRegion sets a new active region. If adjustStep is true, the volume can
	//change the step to keep the number of grid points manageable. If show is true
	//the surfaces are recomputed immediately.
	NewRegion(r Region, adjustStep, show bool)

	Mask() Mask
	SetMask(m Mask)

	//The single color of the surfaces, used when no mask colors them.
	//Recomputed surfaces get it.
	Color() RGBA
	SetColor(c RGBA)

	Data() Field

	//Show recomputes the surfaces with the current settings.
	Show()

	Close() error
}

// Opener is the service that opens volume files.
type Opener interface {
	Open(path string, modelID int) (Volume, error)
}

// Region is a box of grid points, given by the indexes of its first and last
// points (inclusive) and the stride along each axis.
type Region struct {
	Min  [3]int
	Max  [3]int
	Step [3]int
}

// Len returns the number of grid points in the region along each axis.
func (R Region) Len() [3]int {
	var ret [3]int
	for k := 0; k < 3; k++ {
		if R.Step[k] < 1 || R.Max[k] < R.Min[k] {
			continue
		}
		ret[k] = (R.Max[k]-R.Min[k])/R.Step[k] + 1
	}
	return ret
}

// WithStep returns a copy of the region with the same stride along all axes.
func (R Region) WithStep(step int) Region {
	R.Step = [3]int{step, step, step}
	return R
}
