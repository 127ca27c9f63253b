/*
 * volume.go, part of orbitraj.
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
	"path/filepath"

	"github.com/rmera/orbitraj"
	"github.com/rmera/orbitraj/cube"
)

// MaxPoints is the largest number of grid points a region can have before
// NewRegion, when allowed to, increases its step.
const MaxPoints = 2000000

// Opener opens cube files as volumes. It implements orbitraj.Opener.
type Opener struct {
	//Read reads the grid. cube.Read is used if nil.
	Read func(path string) (*cube.Grid, error)
	//Initial color of the surfaces.
	Color orbitraj.RGBA
	//Opened volumes are shown if true.
	Show bool
}

// NewOpener returns an Opener that reads cube files and paints surfaces with c.
func NewOpener(c orbitraj.RGBA) *Opener {
	return &Opener{Read: cube.Read, Color: c, Show: true}
}

// Open reads the grid in path and returns it as a volume with the given model id.
// The surfaces are not computed until Show is called.
func (O *Opener) Open(path string, modelID int) (orbitraj.Volume, error) {
	read := O.Read
	if read == nil {
		read = cube.Read
	}
	G, err := read(path)
	if err != nil {
		return nil, orbitraj.ErrDecorate(err, "volume.Opener.Open")
	}
	V := &Volume{
		name:  filepath.Base(path),
		path:  path,
		id:    modelID,
		shown: O.Show,
		grid:  G,
		color: O.Color,
	}
	full := orbitraj.Region{Max: [3]int{G.N[0] - 1, G.N[1] - 1, G.N[2] - 1}, Step: [3]int{1, 1, 1}}
	V.NewRegion(full, true, false)
	return V, nil
}

// Volume is a cube grid with its rendering state.
type Volume struct {
	name   string
	path   string
	id     int
	shown  bool
	levels []float64
	grid   *cube.Grid
	region *orbitraj.Region
	pieces []orbitraj.Piece
	mask   orbitraj.Mask
	color  orbitraj.RGBA
	closed bool
}

func (V *Volume) Name() string { return V.name }

func (V *Volume) Path() string { return V.path }

func (V *Volume) ModelID() int { return V.id }

func (V *Volume) Shown() bool { return V.shown }

func (V *Volume) SetShown(shown bool) { V.shown = shown }

func (V *Volume) SurfaceLevels() []float64 { return V.levels }

func (V *Volume) SetSurfaceLevels(levels ...float64) {
	V.levels = append([]float64(nil), levels...)
}

func (V *Volume) Pieces() []orbitraj.Piece { return V.pieces }

func (V *Volume) Region() *orbitraj.Region { return V.region }

func (V *Volume) Mask() orbitraj.Mask { return V.mask }

func (V *Volume) SetMask(m orbitraj.Mask) { V.mask = m }

func (V *Volume) Color() orbitraj.RGBA { return V.color }

func (V *Volume) SetColor(c orbitraj.RGBA) { V.color = c }

// Grid returns the underlying grid, or nil if the volume is closed.
func (V *Volume) Grid() *cube.Grid { return V.grid }

// Data returns the grid as a field, or nil if the volume is closed.
func (V *Volume) Data() orbitraj.Field {
	if V.grid == nil {
		return nil
	}
	return V.grid
}

// NewRegion sets the active region, clamped to the grid. With adjustStep, the step is
// doubled (up to 8) while the region has more than MaxPoints points.
func (V *Volume) NewRegion(r orbitraj.Region, adjustStep, show bool) {
	if V.grid == nil {
		return
	}
	for k := 0; k < 3; k++ {
		r.Min[k] = clamp(r.Min[k], 0, V.grid.N[k]-1)
		r.Max[k] = clamp(r.Max[k], r.Min[k], V.grid.N[k]-1)
		if r.Step[k] < 1 {
			r.Step[k] = 1
		}
	}
	if adjustStep {
		for points(r) > MaxPoints && r.Step[0] < 8 {
			r = r.WithStep(r.Step[0] * 2)
		}
		if r.Step[0] > 1 {
			orbitraj.Logf("volume.NewRegion: %s: step set to %d", V.name, r.Step[0])
		}
	}
	V.region = &r
	if show {
		V.Show()
	}
}

func points(r orbitraj.Region) int {
	l := r.Len()
	return l[0] * l[1] * l[2]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Show recomputes one surface per surface level over the active region, and
// colors them with the mask, if it has a color map. It doesn't change whether
// the volume is shown.
func (V *Volume) Show() {
	if V.grid == nil || V.region == nil {
		return
	}
	V.pieces = make([]orbitraj.Piece, 0, len(V.levels))
	for _, l := range V.levels {
		S := isosurface(V.grid, *V.region, l)
		S.color = V.color
		V.pieces = append(V.pieces, S)
	}
	if V.mask != nil && V.mask.ColorMap() != nil {
		V.mask.ColorPieces(V.pieces)
	}
}

// Close releases the grid and the surfaces. Closing a closed volume does nothing.
func (V *Volume) Close() error {
	if V.closed {
		return nil
	}
	V.closed = true
	V.shown = false
	V.grid = nil
	V.pieces = nil
	V.mask = nil
	return nil
}

// Closed returns true if the volume has been closed.
func (V *Volume) Closed() bool { return V.closed }

var _ orbitraj.Volume = (*Volume)(nil)
var _ orbitraj.Opener = (*Opener)(nil)
